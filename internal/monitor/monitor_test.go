package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordRequestRates(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordRequest(true, 100*time.Millisecond, false)
	m.RecordRequest(true, 300*time.Millisecond, false)
	m.RecordRequest(false, 0, true)

	s := m.Snapshot()
	require.EqualValues(t, 3, s.RequestsTotal)
	require.EqualValues(t, 2, s.RequestsSuccessful)
	require.EqualValues(t, 1, s.RequestsFailed)
	require.EqualValues(t, 1, s.BlocksDetected)
	require.InDelta(t, 66.67, s.SuccessRatePercent, 0.01)
	require.InDelta(t, 33.33, s.BlockRatePercent, 0.01)
	// 100ms + 300ms over 3 requests; the zero-latency failure still counts
	// toward the denominator.
	require.InDelta(t, 0.133, s.AvgResponseTimeSeconds, 0.001)
}

func TestBrowserAndRetryCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordRetry()
	m.RecordRetry()
	m.RecordSessionCreated()
	m.RecordBrowserRequest(true)
	m.RecordBrowserRequest(false)

	s := m.Snapshot()
	require.EqualValues(t, 2, s.RetriesPerformed)
	require.EqualValues(t, 1, s.SessionsCreated)
	require.EqualValues(t, 2, s.BrowserRequests)
	require.EqualValues(t, 1, s.BrowserSuccesses)
	require.InDelta(t, 50.0, s.BrowserSuccessPercent, 0.01)
}

func TestResetClearsCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.RecordRequest(true, time.Second, false)
	m.RecordRetry()
	m.Reset()

	s := m.Snapshot()
	require.Zero(t, s.RequestsTotal)
	require.Zero(t, s.RetriesPerformed)
	require.Zero(t, s.AvgResponseTimeSeconds)
}

func TestConcurrentUpdates(t *testing.T) {
	t.Parallel()

	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordRequest(true, time.Millisecond, false)
			m.RecordRetry()
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	require.EqualValues(t, 50, s.RequestsTotal)
	require.EqualValues(t, 50, s.RetriesPerformed)
}
