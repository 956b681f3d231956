package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/monitor"
)

// Session is a persistent browsing identity: one user agent, one
// header set and optionally one proxy, kept stable across requests so
// the target site sees a consistent client.
type Session struct {
	ID        string
	UserAgent string
	Proxy     string
	CreatedAt time.Time

	headers http.Header
	base    *colly.Collector
}

// Response is the outcome of a session GET. A Response is returned for
// every request the server answered, regardless of status code.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Get fetches url with this session's identity. Any answered request
// yields a Response, blocked or not; the caller decides what a 4xx
// page means.
func (s *Session) Get(ctx context.Context, rawURL string) (*Response, error) {
	collector := s.base.Clone()

	var (
		resp     Response
		fetchErr error
	)
	start := time.Now()

	collector.OnRequest(func(r *colly.Request) {
		for key, values := range s.headers {
			for _, v := range values {
				r.Headers.Set(key, v)
			}
		}
	})
	collector.OnResponse(func(r *colly.Response) {
		resp = Response{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil && r.StatusCode != 0 {
			resp = Response{
				URL:        rawURL,
				StatusCode: r.StatusCode,
				Body:       append([]byte(nil), r.Body...),
				Duration:   time.Since(start),
			}
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	select {
	case <-ctx.Done():
		return nil, WrapError(KindTimeout, rawURL, ctx.Err())
	case err := <-done:
		// Colly reports non-2xx statuses as errors, but a body we can
		// inspect still counts as an answered request.
		if resp.StatusCode != 0 {
			return &resp, nil
		}
		if err == nil {
			err = fetchErr
		}
		if err == nil {
			err = fmt.Errorf("no response received")
		}
		return nil, classifyTransportError(rawURL, err)
	}
}

// classifyTransportError maps a transport failure onto the error
// taxonomy: timeouts, redirect loops and everything else.
func classifyTransportError(rawURL string, err error) *Error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return WrapError(KindTimeout, rawURL, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return WrapError(KindTimeout, rawURL, err)
	}
	var ue *url.Error
	if errors.As(err, &ue) && strings.Contains(ue.Err.Error(), "stopped after") {
		return WrapError(KindTooManyRedirects, rawURL, err)
	}
	return WrapError(KindConnection, rawURL, err)
}

// SessionManager owns the pool of live sessions. Sessions expire after
// a configured lifetime and the pool evicts the oldest session when it
// is full.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	maxSessions int
	lifetime    time.Duration
	timeout     time.Duration
	proxies     []string
	createdSeen int
	expiredSeen int

	mon    *monitor.Monitor
	logger *zap.Logger
}

// NewSessionManager builds a pool from config. The monitor may be nil.
func NewSessionManager(cfg *config.Config, mon *monitor.Monitor, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: cfg.Session.MaxSessions,
		lifetime:    cfg.SessionTimeout(),
		timeout:     cfg.RequestTimeout(),
		proxies:     cfg.ProxyURLs(),
		mon:         mon,
		logger:      logger,
	}
}

// Acquire returns the live session stored under key, creating one when
// the key is unknown or its session has expired. An empty key gets a
// fresh random key, so every caller that does not pin a key gets its
// own identity.
func (m *SessionManager) Acquire(ctx context.Context, key string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == "" {
		key = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked()

	if s, ok := m.sessions[key]; ok {
		return s, nil
	}

	if len(m.sessions) >= m.maxSessions {
		m.evictOldestLocked()
	}

	s, err := m.newSessionLocked()
	if err != nil {
		return nil, err
	}
	m.sessions[key] = s
	return s, nil
}

// Rotate drops the session under key so the next Acquire builds a new
// identity. Used after a block to shed a burned fingerprint.
func (m *SessionManager) Rotate(key string) {
	if key == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[key]; ok {
		delete(m.sessions, key)
		m.logger.Debug("session rotated", zap.String("key", key))
	}
}

func (m *SessionManager) newSessionLocked() (*Session, error) {
	ua := randomUserAgent()

	collector := colly.NewCollector(
		colly.UserAgent(ua),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	collector.SetRequestTimeout(m.timeout)
	collector.WithTransport(newSessionTransport())

	var proxy string
	if len(m.proxies) > 0 {
		proxy = m.proxies[rand.Intn(len(m.proxies))]
		if err := collector.SetProxy(proxy); err != nil {
			return nil, fmt.Errorf("set proxy: %w", err)
		}
	}

	s := &Session{
		ID:        uuid.NewString(),
		UserAgent: ua,
		Proxy:     proxy,
		CreatedAt: time.Now(),
		headers:   randomHeaders(ua),
		base:      collector,
	}

	m.createdSeen++
	if m.mon != nil {
		m.mon.RecordSessionCreated()
	}
	m.logger.Debug("session created",
		zap.String("session_id", s.ID),
		zap.String("user_agent", ua),
		zap.Bool("proxied", proxy != ""),
	)
	return s, nil
}

func (m *SessionManager) purgeExpiredLocked() {
	now := time.Now()
	for key, s := range m.sessions {
		if now.Sub(s.CreatedAt) > m.lifetime {
			delete(m.sessions, key)
			m.expiredSeen++
		}
	}
}

func (m *SessionManager) evictOldestLocked() {
	var (
		oldestKey string
		oldestAt  time.Time
	)
	for key, s := range m.sessions {
		if oldestKey == "" || s.CreatedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = s.CreatedAt
		}
	}
	if oldestKey != "" {
		delete(m.sessions, oldestKey)
	}
}

// SessionStats is the snapshot served by the sessions monitoring
// endpoint.
type SessionStats struct {
	ActiveSessions         int `json:"activeSessions"`
	TotalSessionsCreated   int `json:"totalSessionsCreated"`
	ExpiredSessionsRemoved int `json:"expiredSessionsRemoved"`
	MaxSessions            int `json:"maxSessions"`
	SessionLifetimeSeconds int `json:"sessionLifetimeSeconds"`
	ProxiesConfigured      int `json:"proxiesConfigured"`
	UserAgentsAvailable    int `json:"userAgentsAvailable"`
}

// Stats reports the pool state.
func (m *SessionManager) Stats() SessionStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purgeExpiredLocked()
	return SessionStats{
		ActiveSessions:         len(m.sessions),
		TotalSessionsCreated:   m.createdSeen,
		ExpiredSessionsRemoved: m.expiredSeen,
		MaxSessions:            m.maxSessions,
		SessionLifetimeSeconds: int(m.lifetime.Seconds()),
		ProxiesConfigured:      len(m.proxies),
		UserAgentsAvailable:    len(userAgents),
	}
}

func newSessionTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
