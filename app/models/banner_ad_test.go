package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBannerAdIsServable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		status  string
		endDate *time.Time
		want    bool
	}{
		{name: "active without end date", status: BannerStatusActive, endDate: nil, want: true},
		{name: "active with future end date", status: BannerStatusActive, endDate: &future, want: true},
		{name: "active but expired", status: BannerStatusActive, endDate: &past, want: false},
		{name: "paused", status: BannerStatusPaused, endDate: &future, want: false},
		{name: "pending", status: BannerStatusPending, endDate: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BannerAd{Status: tt.status, EndDate: tt.endDate}
			assert.Equal(t, tt.want, b.IsServable(now))
		})
	}
}

func TestBannerAdCTR(t *testing.T) {
	b := &BannerAd{}
	assert.Equal(t, float64(0), b.CTR(), "no impressions yields zero CTR")

	b.Impressions = 1000
	b.Clicks = 21
	assert.InDelta(t, 2.1, b.CTR(), 0.0001)
}

func TestPlanLimitAllowsMoreListings(t *testing.T) {
	basic := &PlanLimit{PlanType: PlanBasic, MaxListings: 1}
	assert.True(t, basic.AllowsMoreListings(0))
	assert.False(t, basic.AllowsMoreListings(1), "at the limit no further listing is allowed")
	assert.False(t, basic.AllowsMoreListings(2))

	featured := &PlanLimit{PlanType: PlanFeatured, MaxListings: UnlimitedCount}
	assert.True(t, featured.AllowsMoreListings(10000))
}

func TestDefaultPlanLimits(t *testing.T) {
	limits := DefaultPlanLimits()
	assert.Len(t, limits, 3)

	byPlan := make(map[string]PlanLimit, len(limits))
	for _, l := range limits {
		assert.NotZero(t, l.MaxListings, "max listings must never be zero")
		byPlan[l.PlanType] = l
	}

	assert.Equal(t, 0, byPlan[PlanBasic].BoostDiscountPercent)
	assert.Equal(t, 10, byPlan[PlanPremium].BoostDiscountPercent)
	assert.Equal(t, 20, byPlan[PlanFeatured].BoostDiscountPercent)
	assert.Equal(t, UnlimitedCount, byPlan[PlanFeatured].MaxListings)
}
