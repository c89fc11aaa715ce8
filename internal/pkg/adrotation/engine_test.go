package adrotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franhub/franhub/app/models"
)

type fakeBanners struct {
	byPosition map[string][]models.BannerAd
	err        error
}

func (f *fakeBanners) Create(b *models.BannerAd) error          { return nil }
func (f *fakeBanners) GetByID(id uint) (*models.BannerAd, error) { return nil, nil }
func (f *fakeBanners) GetAll() ([]models.BannerAd, error)        { return nil, nil }
func (f *fakeBanners) GetServableByPosition(position string, now time.Time) ([]models.BannerAd, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byPosition[position], nil
}
func (f *fakeBanners) Update(b *models.BannerAd) error               { return nil }
func (f *fakeBanners) UpdateStatus(id uint, status string) error     { return nil }
func (f *fakeBanners) Delete(id uint) error                          { return nil }
func (f *fakeBanners) IncrementImpressions(id uint, d int64) error   { return nil }
func (f *fakeBanners) IncrementClicks(id uint, d int64) error        { return nil }

type memRecorder struct {
	impressions map[uint]int
	clicks      map[uint]int
}

func newMemRecorder() *memRecorder {
	return &memRecorder{impressions: map[uint]int{}, clicks: map[uint]int{}}
}

func (r *memRecorder) RecordImpression(id uint) error { r.impressions[id]++; return nil }
func (r *memRecorder) RecordClick(id uint) error      { r.clicks[id]++; return nil }

func banner(id uint, position, title string) models.BannerAd {
	return models.BannerAd{
		ID:       id,
		Position: position,
		Title:    title,
		Status:   models.BannerStatusActive,
	}
}

func headerEngine(t *testing.T, banners ...models.BannerAd) (*Engine, *memRecorder) {
	t.Helper()
	repo := &fakeBanners{byPosition: map[string][]models.BannerAd{
		models.BannerPositionHeader: banners,
	}}
	rec := newMemRecorder()
	e := NewEngine(models.BannerPositionHeader, repo, rec)
	e.Reload()
	return e, rec
}

func TestReloadFallsBackToPlaceholders(t *testing.T) {
	e, _ := headerEngine(t)

	creatives, idx := e.All()
	require.NotEmpty(t, creatives)
	assert.Equal(t, 0, idx)
	for _, c := range creatives {
		assert.True(t, c.IsFallback)
		assert.Zero(t, c.ID)
	}
}

func TestReloadKeepsSlotOnRepositoryError(t *testing.T) {
	repo := &fakeBanners{err: assert.AnError}
	e := NewEngine(models.BannerPositionHeader, repo, newMemRecorder())

	e.Reload()
	creatives, _ := e.All()
	assert.NotEmpty(t, creatives, "slot must keep serving placeholders when the DB is down")
}

func TestManualNavigationWrapsAround(t *testing.T) {
	e, _ := headerEngine(t,
		banner(1, models.BannerPositionHeader, "one"),
		banner(2, models.BannerPositionHeader, "two"),
		banner(3, models.BannerPositionHeader, "three"),
	)

	assert.Equal(t, "one", e.Peek().Title)
	assert.Equal(t, "two", e.Next().Title)
	assert.Equal(t, "three", e.Next().Title)
	assert.Equal(t, "one", e.Next().Title)
	assert.Equal(t, "three", e.Prev().Title)
	assert.Equal(t, "two", e.GoTo(1).Title)

	// Out-of-range jump keeps the current creative.
	assert.Equal(t, "two", e.GoTo(9).Title)
}

func TestTickAdvanceSkipsWhenPaused(t *testing.T) {
	e, _ := headerEngine(t,
		banner(1, models.BannerPositionHeader, "one"),
		banner(2, models.BannerPositionHeader, "two"),
	)

	e.tickAdvance()
	assert.Equal(t, "two", e.Peek().Title)

	e.Pause()
	assert.True(t, e.IsPaused())
	e.tickAdvance()
	assert.Equal(t, "two", e.Peek().Title)

	e.Resume()
	e.tickAdvance()
	assert.Equal(t, "one", e.Peek().Title)
}

func TestTickAdvanceNoopForSingleCreative(t *testing.T) {
	e, rec := headerEngine(t, banner(1, models.BannerPositionHeader, "only"))

	e.tickAdvance()
	e.tickAdvance()
	assert.Equal(t, "only", e.Peek().Title)
	assert.Empty(t, rec.impressions, "no advancing means no new impressions")
}

func TestImpressionsRecordedForPaidCreativesOnly(t *testing.T) {
	e, rec := headerEngine(t,
		banner(7, models.BannerPositionHeader, "paid"),
		banner(8, models.BannerPositionHeader, "paid-too"),
	)

	e.Current()
	e.Next()
	assert.Equal(t, 1, rec.impressions[7])
	assert.Equal(t, 1, rec.impressions[8])

	// Fallback slots never record.
	empty, fallbackRec := headerEngine(t)
	empty.Current()
	empty.Next()
	assert.Empty(t, fallbackRec.impressions)
}

func TestPeekRecordsNoImpression(t *testing.T) {
	e, rec := headerEngine(t,
		banner(7, models.BannerPositionHeader, "paid"),
	)

	// Server-side page renders read the slot with Peek, so a page view
	// only counts once, when the client reports it.
	e.Peek()
	e.Peek()
	assert.Empty(t, rec.impressions)

	e.Current()
	assert.Equal(t, 1, rec.impressions[7])
}

func TestClickRecording(t *testing.T) {
	e, rec := headerEngine(t, banner(7, models.BannerPositionHeader, "paid"))

	e.Click(7)
	e.Click(7)
	e.Click(0) // fallback id, ignored
	assert.Equal(t, 2, rec.clicks[7])
	assert.Len(t, rec.clicks, 1)
}

func TestStartStopIdempotent(t *testing.T) {
	e, _ := headerEngine(t, banner(1, models.BannerPositionHeader, "one"))
	e.WithInterval(time.Hour)

	e.Start()
	e.Start()
	assert.True(t, e.IsRunning())

	e.Stop()
	e.Stop()
	assert.False(t, e.IsRunning())

	// Restart after stop works.
	e.Start()
	assert.True(t, e.IsRunning())
	e.Stop()
}

func TestIsExternalLink(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://brand.example.com/promo", true},
		{"http://brand.example.com", true},
		{"/advertise", false},
		{"", false},
	}
	for _, tt := range tests {
		c := Creative{LinkURL: tt.url}
		assert.Equal(t, tt.want, c.IsExternalLink(), tt.url)
	}
}

func TestManagerBuildsEngineForEveryPosition(t *testing.T) {
	m := NewManager(&fakeBanners{byPosition: map[string][]models.BannerAd{}}, newMemRecorder())

	for _, pos := range Positions() {
		require.NotNil(t, m.Engine(pos), pos)
	}
	assert.Nil(t, m.Engine("popup"))
}
