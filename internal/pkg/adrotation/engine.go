// Package adrotation serves banner creatives for the ad slots on public
// pages. Each slot position gets its own engine that cycles through the
// servable creatives on a fixed interval, supports manual navigation and
// pause/resume, and records impressions and clicks best-effort.
package adrotation

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/franhub/franhub/app/models"
	"github.com/franhub/franhub/app/repository"
)

// DefaultRotationInterval is how often a slot advances on its own.
const DefaultRotationInterval = 8 * time.Second

// reloadEvery controls how many ticks pass between creative refreshes
// from the database.
const reloadEvery = 8

// Positions lists the slot positions in display order.
func Positions() []string {
	return []string{
		models.BannerPositionHeader,
		models.BannerPositionSidebar,
		models.BannerPositionFooter,
		models.BannerPositionInline,
	}
}

// Creative is the render-ready view of one banner in a slot. Fallback
// creatives (ID 0) are house placeholders shown when no paid banner is
// servable; they never record metrics.
type Creative struct {
	ID              uint   `json:"id"`
	BrandName       string `json:"brand_name"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url"`
	LinkURL         string `json:"link_url"`
	CTAText         string `json:"cta_text"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	IsFallback      bool   `json:"is_fallback"`
}

// IsExternalLink reports whether the creative's link leaves the site and
// should open in a new tab.
func (c *Creative) IsExternalLink() bool {
	return strings.HasPrefix(c.LinkURL, "http://") || strings.HasPrefix(c.LinkURL, "https://")
}

func creativeFromBanner(b *models.BannerAd) Creative {
	return Creative{
		ID:              b.ID,
		BrandName:       b.BrandName,
		Title:           b.Title,
		Description:     b.Description,
		ImageURL:        b.ImageURL,
		LinkURL:         b.LinkURL,
		CTAText:         b.CTAText,
		BackgroundColor: b.BackgroundColor,
		TextColor:       b.TextColor,
	}
}

// fallbackCreatives returns the house placeholders for a position.
func fallbackCreatives(position string) []Creative {
	return []Creative{
		{
			BrandName:       "FranHub",
			Title:           "Advertise your brand here",
			Description:     "Reach franchise buyers browsing the marketplace every day.",
			LinkURL:         "/advertise",
			CTAText:         "Book this slot",
			BackgroundColor: "#1e3a5f",
			TextColor:       "#ffffff",
			IsFallback:      true,
		},
		{
			BrandName:       "FranHub",
			Title:           "Grow faster with a " + position + " placement",
			Description:     "Banner packages start at affordable monthly rates.",
			LinkURL:         "/advertise",
			CTAText:         "Get in touch",
			BackgroundColor: "#14532d",
			TextColor:       "#ffffff",
			IsFallback:      true,
		},
	}
}

// Recorder buffers impression and click counts. Failures are the
// recorder's problem; the engine never blocks serving on metrics.
type Recorder interface {
	RecordImpression(bannerID uint) error
	RecordClick(bannerID uint) error
}

// Engine rotates the creatives of one slot position.
type Engine struct {
	position string
	banners  repository.BannerAdRepository
	recorder Recorder
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	creatives []Creative
	index     int
	paused    bool

	ticker  *time.Ticker
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
}

func NewEngine(position string, banners repository.BannerAdRepository, recorder Recorder) *Engine {
	e := &Engine{
		position: position,
		banners:  banners,
		recorder: recorder,
		interval: DefaultRotationInterval,
		now:      time.Now,
	}
	e.creatives = fallbackCreatives(position)
	return e
}

// WithInterval overrides the rotation interval.
func (e *Engine) WithInterval(d time.Duration) *Engine {
	e.interval = d
	return e
}

// WithClock overrides the time source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Reload refreshes the slot's creatives from the database. When no paid
// banner is servable the slot falls back to house placeholders, so a
// slot is never empty. The current index is clamped, not reset, so an
// unchanged set keeps its place in the cycle.
func (e *Engine) Reload() {
	banners, err := e.banners.GetServableByPosition(e.position, e.now())
	if err != nil {
		log.Errorf("[AdRotation] %s: reload failed: %v", e.position, err)
		return
	}

	creatives := make([]Creative, 0, len(banners))
	for i := range banners {
		creatives = append(creatives, creativeFromBanner(&banners[i]))
	}
	if len(creatives) == 0 {
		creatives = fallbackCreatives(e.position)
	}

	e.mu.Lock()
	e.creatives = creatives
	if e.index >= len(creatives) {
		e.index = 0
	}
	e.mu.Unlock()
}

// Current returns the creative currently in the slot and records an
// impression for it.
func (e *Engine) Current() Creative {
	e.mu.Lock()
	c := e.creatives[e.index]
	e.mu.Unlock()

	e.recordImpression(c)
	return c
}

// Peek returns the current creative without recording an impression.
func (e *Engine) Peek() Creative {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.creatives[e.index]
}

// All returns the slot's full creative set and the current index.
func (e *Engine) All() ([]Creative, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Creative, len(e.creatives))
	copy(out, e.creatives)
	return out, e.index
}

// Next advances the slot manually and returns the new creative.
func (e *Engine) Next() Creative {
	return e.step(1)
}

// Prev steps the slot backwards and returns the new creative.
func (e *Engine) Prev() Creative {
	return e.step(-1)
}

// GoTo jumps to a specific creative index. Out-of-range indexes are
// ignored and the current creative is returned.
func (e *Engine) GoTo(i int) Creative {
	e.mu.Lock()
	if i >= 0 && i < len(e.creatives) {
		e.index = i
	}
	c := e.creatives[e.index]
	e.mu.Unlock()

	e.recordImpression(c)
	return c
}

func (e *Engine) step(delta int) Creative {
	e.mu.Lock()
	n := len(e.creatives)
	e.index = ((e.index+delta)%n + n) % n
	c := e.creatives[e.index]
	e.mu.Unlock()

	e.recordImpression(c)
	return c
}

// Pause holds the slot on its current creative; automatic rotation
// skips paused slots. Manual navigation still works.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.paused = true
	e.mu.Unlock()
}

// Resume re-enables automatic rotation.
func (e *Engine) Resume() {
	e.mu.Lock()
	e.paused = false
	e.mu.Unlock()
}

// IsPaused reports whether automatic rotation is held.
func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Click records a click for a creative in this slot. Unknown or
// fallback IDs are ignored.
func (e *Engine) Click(bannerID uint) {
	if bannerID == 0 || e.recorder == nil {
		return
	}
	if err := e.recorder.RecordClick(bannerID); err != nil {
		log.Errorf("[AdRotation] %s: click record failed: %v", e.position, err)
	}
}

func (e *Engine) recordImpression(c Creative) {
	if c.IsFallback || c.ID == 0 || e.recorder == nil {
		return
	}
	if err := e.recorder.RecordImpression(c.ID); err != nil {
		log.Errorf("[AdRotation] %s: impression record failed: %v", e.position, err)
	}
}

// Start begins automatic rotation. Starting a running engine is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.ticker = time.NewTicker(e.interval)
	e.mu.Unlock()

	e.Reload()

	e.wg.Add(1)
	go e.rotateWorker()
	log.Infof("[AdRotation] %s: engine started (interval %s)", e.position, e.interval)
}

// Stop halts automatic rotation. Stopping a stopped engine is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.ticker.Stop()
	close(e.stopCh)
	e.mu.Unlock()

	e.wg.Wait()
	log.Infof("[AdRotation] %s: engine stopped", e.position)
}

// IsRunning reports whether the rotation worker is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) rotateWorker() {
	defer e.wg.Done()
	ticks := 0
	for {
		select {
		case <-e.stopCh:
			return
		case <-e.ticker.C:
			ticks++
			if ticks%reloadEvery == 0 {
				e.Reload()
			}
			e.tickAdvance()
		}
	}
}

func (e *Engine) tickAdvance() {
	e.mu.Lock()
	if e.paused || len(e.creatives) < 2 {
		e.mu.Unlock()
		return
	}
	e.index = (e.index + 1) % len(e.creatives)
	c := e.creatives[e.index]
	e.mu.Unlock()

	e.recordImpression(c)
}
