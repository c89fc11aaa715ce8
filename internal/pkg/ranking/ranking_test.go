package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/franhub/franhub/app/models"
)

func listing(id uint, name string) models.Listing {
	return models.Listing{ID: id, Name: name}
}

func boostedListing(id uint, name string, end time.Time) models.Listing {
	l := listing(id, name)
	l.IsBoosted = true
	l.BoostEndDate = &end
	return l
}

func featuredListing(id uint, name string) models.Listing {
	l := listing(id, name)
	l.IsFeatured = true
	return l
}

func names(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Name
	}
	return out
}

func TestRankPartitionsBoostedFeaturedRest(t *testing.T) {
	now := time.Now()
	in := []models.Listing{
		listing(1, "plain-a"),
		featuredListing(2, "featured-a"),
		boostedListing(3, "boosted-a", now.Add(24*time.Hour)),
		listing(4, "plain-b"),
		boostedListing(5, "boosted-b", now.Add(time.Hour)),
		featuredListing(6, "featured-b"),
	}

	got := Rank(in, now)
	assert.Equal(t,
		[]string{"boosted-a", "boosted-b", "featured-a", "featured-b", "plain-a", "plain-b"},
		names(got))
}

func TestRankKeepsIncomingOrderWithinBands(t *testing.T) {
	now := time.Now()
	in := []models.Listing{
		featuredListing(1, "f1"),
		featuredListing(2, "f2"),
		featuredListing(3, "f3"),
	}

	got := Rank(in, now)
	assert.Equal(t, []string{"f1", "f2", "f3"}, names(got))
}

func TestRankExpiredBoostDropsToRest(t *testing.T) {
	now := time.Now()
	in := []models.Listing{
		listing(1, "plain"),
		boostedListing(2, "lapsed", now.Add(-time.Minute)),
		featuredListing(3, "featured"),
	}

	got := Rank(in, now)
	assert.Equal(t, []string{"featured", "plain", "lapsed"}, names(got))
}

func TestRankExpiredBoostOnFeaturedListingKeepsFeaturedBand(t *testing.T) {
	now := time.Now()
	l := featuredListing(1, "combo")
	l.IsBoosted = true
	end := now.Add(-time.Hour)
	l.BoostEndDate = &end

	got := Rank([]models.Listing{listing(2, "plain"), l}, now)
	assert.Equal(t, []string{"combo", "plain"}, names(got))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	in := []models.Listing{
		listing(1, "plain"),
		boostedListing(2, "boosted", now.Add(time.Hour)),
	}

	_ = Rank(in, now)
	assert.Equal(t, []string{"plain", "boosted"}, names(in))
}

func TestBand(t *testing.T) {
	now := time.Now()
	b := boostedListing(1, "b", now.Add(time.Hour))
	f := featuredListing(2, "f")
	p := listing(3, "p")
	lapsed := boostedListing(4, "l", now.Add(-time.Hour))

	assert.Equal(t, "boosted", Band(&b, now))
	assert.Equal(t, "featured", Band(&f, now))
	assert.Equal(t, "standard", Band(&p, now))
	assert.Equal(t, "standard", Band(&lapsed, now))
}
