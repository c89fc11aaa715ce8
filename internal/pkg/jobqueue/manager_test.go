package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stop must leave the closed stop channel in place until every worker has
// observed it. Nilling the field lets a worker re-read nil and block on a
// nil channel, which hangs the wg.Wait inside Stop.
func TestManagerStopDrainsWorkers(t *testing.T) {
	m := &Manager{
		queue:  NewQueue(1),
		stopCh: make(chan struct{}),
	}

	// Hour-long tickers keep the worker bodies from firing; the test only
	// exercises the shutdown path.
	m.counterFlushTicker = time.NewTicker(time.Hour)
	m.statsRefreshTicker = time.NewTicker(time.Hour)
	m.boostReconcileTicker = time.NewTicker(time.Hour)
	m.running = true

	m.wg.Add(3)
	go m.counterFlushWorker()
	go m.statsRefreshWorker()
	go m.boostReconcileWorker()

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return; a worker is blocked past shutdown")
	}

	require.NotNil(t, m.stopCh)
	select {
	case <-m.stopCh:
	default:
		t.Fatal("stop channel must remain closed after Stop")
	}
	assert.False(t, m.IsRunning())
}
