package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/monitor"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.TimeoutSeconds = 3600
	cfg.Session.MaxSessions = 3
	cfg.HTTP.TimeoutSeconds = 5
	cfg.HTTP.MaxRetries = 3
	cfg.HTTP.DelayMinMs = 1
	cfg.HTTP.DelayMaxMs = 5
	cfg.HTTP.RequestQPS = 1000
	return cfg
}

func TestSessionGetReturnsAnsweredErrorStatuses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<html>transfermarkt: no such player</html>"))
	}))
	defer srv.Close()

	m := NewSessionManager(testConfig(), nil, zap.NewNop())
	s, err := m.Acquire(context.Background(), "k")
	require.NoError(t, err)

	resp, err := s.Get(context.Background(), srv.URL)
	require.NoError(t, err, "an answered 404 is a response, not a transport failure")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "no such player")
}

func TestSessionSendsRotatedHeaders(t *testing.T) {
	t.Parallel()

	var gotUA, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	m := NewSessionManager(testConfig(), nil, zap.NewNop())
	s, err := m.Acquire(context.Background(), "k")
	require.NoError(t, err)

	_, err = s.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, s.UserAgent, gotUA)
	assert.Contains(t, acceptLanguages, gotLang)
}

func TestAcquireReusesLiveSession(t *testing.T) {
	t.Parallel()

	m := NewSessionManager(testConfig(), nil, zap.NewNop())
	ctx := context.Background()

	a, err := m.Acquire(ctx, "key-1")
	require.NoError(t, err)
	b, err := m.Acquire(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	c, err := m.Acquire(ctx, "key-2")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestAcquireEvictsOldestWhenFull(t *testing.T) {
	t.Parallel()

	m := NewSessionManager(testConfig(), nil, zap.NewNop())
	ctx := context.Background()

	first, err := m.Acquire(ctx, "a")
	require.NoError(t, err)
	_, err = m.Acquire(ctx, "b")
	require.NoError(t, err)
	_, err = m.Acquire(ctx, "c")
	require.NoError(t, err)

	// Pool is at capacity; the next key evicts the oldest entry.
	_, err = m.Acquire(ctx, "d")
	require.NoError(t, err)

	replacement, err := m.Acquire(ctx, "a")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, replacement.ID, "evicted key must get a fresh session")
	assert.Equal(t, 3, m.Stats().ActiveSessions)
}

func TestAcquireExpiresStaleSessions(t *testing.T) {
	t.Parallel()

	mon := monitor.New()
	m := NewSessionManager(testConfig(), mon, zap.NewNop())
	ctx := context.Background()

	a, err := m.Acquire(ctx, "stale")
	require.NoError(t, err)
	a.CreatedAt = time.Now().Add(-2 * m.lifetime)

	b, err := m.Acquire(ctx, "stale")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "a session past its lifetime is purged, not reused")

	stats := m.Stats()
	assert.Equal(t, 1, stats.ExpiredSessionsRemoved)
	assert.EqualValues(t, 2, mon.Snapshot().SessionsCreated)
}

func TestRotateDropsSession(t *testing.T) {
	t.Parallel()

	m := NewSessionManager(testConfig(), nil, zap.NewNop())
	ctx := context.Background()

	a, err := m.Acquire(ctx, "burned")
	require.NoError(t, err)
	m.Rotate("burned")
	b, err := m.Acquire(ctx, "burned")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Stats().TotalSessionsCreated)
}

func TestSessionStats(t *testing.T) {
	t.Parallel()

	m := NewSessionManager(testConfig(), nil, zap.NewNop())
	_, err := m.Acquire(context.Background(), "x")
	require.NoError(t, err)

	stats := m.Stats()
	assert.Equal(t, 1, stats.ActiveSessions)
	assert.Equal(t, 3, stats.MaxSessions)
	assert.Equal(t, 3600, stats.SessionLifetimeSeconds)
	assert.Equal(t, len(userAgents), stats.UserAgentsAvailable)
}

func TestRandomHeadersClientHints(t *testing.T) {
	t.Parallel()

	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	h := randomHeaders(chrome)
	assert.NotEmpty(t, h.Get("sec-ch-ua"))
	assert.Equal(t, `"Windows"`, h.Get("sec-ch-ua-platform"))

	firefox := "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:132.0) Gecko/20100101 Firefox/132.0"
	h = randomHeaders(firefox)
	assert.Empty(t, h.Get("sec-ch-ua"), "client hints are a Chromium-only header family")
	assert.Equal(t, firefox, h.Get("User-Agent"))
}
