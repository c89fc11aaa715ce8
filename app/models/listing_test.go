package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	return &Listing{
		UserID:        1,
		Name:          "MoonTea Bubble Tea",
		Category:      CategoryFood,
		InvestmentMin: 50000,
		InvestmentMax: 200000,
		Description:   "Turnkey bubble tea franchise with supply chain included.",
		Phone:         "081-234-5678",
	}
}

func TestListingValidateContactRequired(t *testing.T) {
	l := validListing()
	l.Phone = ""
	l.LineID = ""

	err := l.Validate()
	require.ErrorIs(t, err, ErrContactRequired)

	// Supplying a phone number makes the same record valid.
	l.Phone = "081-234-5678"
	assert.NoError(t, l.Validate())

	// A LINE ID alone also satisfies the contact rule.
	l.Phone = ""
	l.LineID = "@moontea"
	assert.NoError(t, l.Validate())
}

func TestListingValidateInvestmentRange(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantErr error
	}{
		{name: "valid range", min: 50000, max: 200000, wantErr: nil},
		{name: "min equals max", min: 100000, max: 100000, wantErr: ErrInvestmentRange},
		{name: "min above max", min: 300000, max: 200000, wantErr: ErrInvestmentRange},
		{name: "negative min", min: -1, max: 200000, wantErr: ErrInvestmentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			l.InvestmentMin = tt.min
			l.InvestmentMax = tt.max
			err := l.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestListingValidateCategory(t *testing.T) {
	l := validListing()
	l.Category = "crypto"
	assert.ErrorIs(t, l.Validate(), ErrUnknownCategory)

	for _, category := range Categories {
		l.Category = category
		assert.NoError(t, l.Validate())
	}
}

func TestListingValidateFeatures(t *testing.T) {
	l := validListing()
	l.Features = FeatureList{"free-training", "support-team"}
	require.NoError(t, l.Validate())

	l.Features = FeatureList{"free-training", "time-travel"}
	assert.ErrorIs(t, l.Validate(), ErrUnknownFeature)
}

func TestListingHasActiveBoost(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Millisecond)

	l := validListing()
	assert.False(t, l.HasActiveBoost(now), "unboosted listing")

	l.IsBoosted = true
	assert.False(t, l.HasActiveBoost(now), "boosted flag without end date")

	l.BoostEndDate = &future
	assert.True(t, l.HasActiveBoost(now))

	// A lapsed boost reads as inactive even while the stored flag is true.
	l.BoostEndDate = &past
	assert.True(t, l.IsBoosted)
	assert.False(t, l.HasActiveBoost(now))
}

func TestFeatureListRoundTrip(t *testing.T) {
	f := FeatureList{"income-guarantee", "roi-under-1-year"}

	v, err := f.Value()
	require.NoError(t, err)

	var got FeatureList
	require.NoError(t, got.Scan(v))
	assert.Equal(t, f, got)

	var empty FeatureList
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
}

func TestListingContactPrefersPhone(t *testing.T) {
	l := validListing()
	l.LineID = "@moontea"
	assert.Equal(t, "081-234-5678", l.Contact())

	l.Phone = ""
	assert.Equal(t, "@moontea", l.Contact())
}
