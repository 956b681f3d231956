// Package monitor tracks anti-scraping performance counters.
//
// The Monitor is an injected service shared by the session manager, retry
// controller, browser renderer, and fetch orchestrator. Every update is
// mirrored to the Prometheus collectors in internal/metrics; the snapshot
// form exists for the JSON monitoring endpoints.
package monitor

import (
	"sync"
	"time"

	"github.com/footdata/transfermarkt-api/internal/metrics"
)

// Monitor accumulates process-wide request outcome counters.
// All methods are safe for concurrent use.
type Monitor struct {
	mu sync.Mutex

	requestsTotal      int64
	requestsSuccessful int64
	requestsFailed     int64
	blocksDetected     int64
	retriesPerformed   int64
	sessionsCreated    int64
	browserRequests    int64
	browserSuccesses   int64
	avgResponseTime    time.Duration
	lastReset          time.Time
}

// Stats is the snapshot returned by the monitoring endpoint.
type Stats struct {
	UptimeSeconds          float64 `json:"uptimeSeconds"`
	RequestsTotal          int64   `json:"requestsTotal"`
	RequestsSuccessful     int64   `json:"requestsSuccessful"`
	RequestsFailed         int64   `json:"requestsFailed"`
	SuccessRatePercent     float64 `json:"successRatePercent"`
	BlocksDetected         int64   `json:"blocksDetected"`
	BlockRatePercent       float64 `json:"blockRatePercent"`
	RetriesPerformed       int64   `json:"retriesPerformed"`
	SessionsCreated        int64   `json:"sessionsCreated"`
	AvgResponseTimeSeconds float64 `json:"avgResponseTimeSeconds"`
	BrowserRequests        int64   `json:"browserRequests"`
	BrowserSuccesses       int64   `json:"browserSuccesses"`
	BrowserSuccessPercent  float64 `json:"browserSuccessRatePercent"`
}

// New constructs a Monitor and initializes the Prometheus collectors.
func New() *Monitor {
	metrics.Init()
	return &Monitor{lastReset: time.Now()}
}

// RecordRequest records one upstream fetch attempt and folds its latency
// into the running average.
func (m *Monitor) RecordRequest(success bool, elapsed time.Duration, blocked bool) {
	metrics.ObserveScrape(success, blocked, elapsed)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsTotal++
	if success {
		m.requestsSuccessful++
	} else {
		m.requestsFailed++
	}
	if blocked {
		m.blocksDetected++
	}
	prev := m.avgResponseTime * time.Duration(m.requestsTotal-1)
	m.avgResponseTime = (prev + elapsed) / time.Duration(m.requestsTotal)
}

// RecordRetry records that a retry was performed.
func (m *Monitor) RecordRetry() {
	metrics.ObserveRetry()

	m.mu.Lock()
	m.retriesPerformed++
	m.mu.Unlock()
}

// RecordSessionCreated records the construction of a new session.
// Cache hits are not recorded.
func (m *Monitor) RecordSessionCreated() {
	metrics.ObserveSessionCreated()

	m.mu.Lock()
	m.sessionsCreated++
	m.mu.Unlock()
}

// RecordBrowserRequest records one headless render attempt.
func (m *Monitor) RecordBrowserRequest(success bool) {
	metrics.ObserveBrowserRender(success)

	m.mu.Lock()
	m.browserRequests++
	if success {
		m.browserSuccesses++
	}
	m.mu.Unlock()
}

// Snapshot returns a consistent view of the counters.
func (m *Monitor) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Stats{
		UptimeSeconds:          time.Since(m.lastReset).Seconds(),
		RequestsTotal:          m.requestsTotal,
		RequestsSuccessful:     m.requestsSuccessful,
		RequestsFailed:         m.requestsFailed,
		BlocksDetected:         m.blocksDetected,
		RetriesPerformed:       m.retriesPerformed,
		SessionsCreated:        m.sessionsCreated,
		AvgResponseTimeSeconds: m.avgResponseTime.Seconds(),
		BrowserRequests:        m.browserRequests,
		BrowserSuccesses:       m.browserSuccesses,
	}
	if m.requestsTotal > 0 {
		s.SuccessRatePercent = round2(float64(m.requestsSuccessful) / float64(m.requestsTotal) * 100)
		s.BlockRatePercent = round2(float64(m.blocksDetected) / float64(m.requestsTotal) * 100)
	}
	if m.browserRequests > 0 {
		s.BrowserSuccessPercent = round2(float64(m.browserSuccesses) / float64(m.browserRequests) * 100)
	}
	return s
}

// Reset zeroes every counter. The Prometheus collectors stay cumulative
// and are left untouched.
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsTotal = 0
	m.requestsSuccessful = 0
	m.requestsFailed = 0
	m.blocksDetected = 0
	m.retriesPerformed = 0
	m.sessionsCreated = 0
	m.browserRequests = 0
	m.browserSuccesses = 0
	m.avgResponseTime = 0
	m.lastReset = time.Now()
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}
