package adrotation

import (
	"sync"

	"github.com/franhub/franhub/app/repository"
	metrics "github.com/franhub/franhub/internal/pkg/metrics/counter"
)

// Manager owns one rotation engine per ad slot position.
type Manager struct {
	engines map[string]*Engine
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global rotation manager (singleton). Engines
// record metrics through the Redis counter buffers.
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = NewManager(repository.GetGlobalRepositories().BannerAd, CounterRecorder{})
	})
	return globalManager
}

// NewManager builds an engine for every slot position.
func NewManager(banners repository.BannerAdRepository, recorder Recorder) *Manager {
	engines := make(map[string]*Engine, len(Positions()))
	for _, pos := range Positions() {
		engines[pos] = NewEngine(pos, banners, recorder)
	}
	return &Manager{engines: engines}
}

// Engine returns the engine for a slot position, nil for unknown slots.
func (m *Manager) Engine(position string) *Engine {
	return m.engines[position]
}

// Start starts every slot engine.
func (m *Manager) Start() {
	for _, e := range m.engines {
		e.Start()
	}
}

// Stop stops every slot engine.
func (m *Manager) Stop() {
	for _, e := range m.engines {
		e.Stop()
	}
}

// ReloadAll refreshes the creatives of every slot, used after an admin
// edits banners so changes show up without waiting for the next cycle.
func (m *Manager) ReloadAll() {
	for _, e := range m.engines {
		e.Reload()
	}
}

// CounterRecorder buffers impressions and clicks in Redis; the job
// manager's flush worker moves them to the database in batches.
type CounterRecorder struct{}

func (CounterRecorder) RecordImpression(bannerID uint) error {
	return metrics.AddBannerImpression(bannerID)
}

func (CounterRecorder) RecordClick(bannerID uint) error {
	return metrics.AddBannerClick(bannerID)
}
