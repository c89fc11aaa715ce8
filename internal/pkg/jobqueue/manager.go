package jobqueue

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/franhub/franhub/app/repository"
	metrics "github.com/franhub/franhub/internal/pkg/metrics/counter"
	"github.com/franhub/franhub/internal/pkg/statistics"
)

const (
	counterFlushInterval   = 5 * time.Second
	statsRefreshInterval   = 5 * time.Minute
	boostReconcileInterval = 10 * time.Minute
)

// Manager manages the global job queue and background tasks
type Manager struct {
	queue                *Queue
	counterFlushTicker   *time.Ticker
	statsRefreshTicker   *time.Ticker
	boostReconcileTicker *time.Ticker
	stopCh               chan struct{}
	wg                   sync.WaitGroup
	mu                   sync.Mutex
	running              bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		globalManager = &Manager{
			queue:  NewQueue(3),
			stopCh: make(chan struct{}),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background tasks
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background tasks")

	m.queue.Start()

	// Counter flush worker (Redis -> DB)
	m.counterFlushTicker = time.NewTicker(counterFlushInterval)
	m.wg.Add(1)
	go m.counterFlushWorker()

	// Marketplace statistics cache refresh
	m.statsRefreshTicker = time.NewTicker(statsRefreshInterval)
	m.wg.Add(1)
	go m.statsRefreshWorker()

	// Stale boost flag reconciliation. Ranking evaluates the end date, so this
	// only keeps the stored flags honest for reporting queries.
	m.boostReconcileTicker = time.NewTicker(boostReconcileInterval)
	m.wg.Add(1)
	go m.boostReconcileWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background tasks
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background tasks...")

	if m.counterFlushTicker != nil {
		m.counterFlushTicker.Stop()
	}
	if m.statsRefreshTicker != nil {
		m.statsRefreshTicker.Stop()
	}
	if m.boostReconcileTicker != nil {
		m.boostReconcileTicker.Stop()
	}

	// Workers re-read m.stopCh each loop iteration, so the closed channel
	// must stay in place until they have all drained. Start replaces it.
	close(m.stopCh)
	m.running = false

	m.wg.Wait()

	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

// counterFlushWorker periodically flushes view/impression/click counters from
// Redis to the database.
func (m *Manager) counterFlushWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Counter flush worker stopping")
			return
		case <-m.counterFlushTicker.C:
			if err := metrics.FlushAll(); err != nil {
				log.Errorf("[JobQueue Manager] Counter flush error: %v", err)
			}
		}
	}
}

// statsRefreshWorker keeps the cached marketplace statistics warm.
func (m *Manager) statsRefreshWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Stats refresh worker stopping")
			return
		case <-m.statsRefreshTicker.C:
			statistics.UpdateStatisticsCache()
		}
	}
}

// boostReconcileWorker clears IsBoosted flags whose end date has passed.
func (m *Manager) boostReconcileWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Boost reconcile worker stopping")
			return
		case <-m.boostReconcileTicker.C:
			if err := m.reconcileBoostsOnce(); err != nil {
				log.Errorf("[JobQueue Manager] Boost reconcile error: %v", err)
			}
		}
	}
}

func (m *Manager) reconcileBoostsOnce() error {
	repos := repository.GetGlobalRepositories()
	if repos == nil {
		return nil
	}
	cleared, err := repos.Listing.ClearExpiredBoostFlags(time.Now())
	if err != nil {
		return err
	}
	if cleared > 0 {
		log.Infof("[JobQueue Manager] Cleared %d expired boost flags", cleared)
	}
	return nil
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
