// Package scraper implements the resilient fetch pipeline: rotating
// sessions, block detection, retry with backoff and a headless-browser
// fallback for pages the plain HTTP path cannot get.
package scraper

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/extract"
	"github.com/footdata/transfermarkt-api/internal/monitor"
)

// pageRenderer is the browser-side fetch the orchestrator escalates
// to. *Renderer is the production implementation.
type pageRenderer interface {
	Render(ctx context.Context, url, waitSelector string) (string, error)
}

// Fetcher is the entry point the extraction services use. One Fetcher
// serves all requests; per-request state lives in sessions.
type Fetcher struct {
	sessions *SessionManager
	retrier  *Retrier
	detector *Detector
	renderer pageRenderer
	limiter  *rate.Limiter

	mon    *monitor.Monitor
	logger *zap.Logger
}

// NewFetcher wires the pipeline from config. renderer may be nil when
// the browser fallback is disabled.
func NewFetcher(cfg *config.Config, sessions *SessionManager, retrier *Retrier, renderer *Renderer, mon *monitor.Monitor, logger *zap.Logger) *Fetcher {
	f := &Fetcher{
		sessions: sessions,
		retrier:  retrier,
		detector: NewDetector("transfermarkt"),
		limiter:  rate.NewLimiter(rate.Limit(cfg.HTTP.RequestQPS), 1),
		mon:      mon,
		logger:   logger,
	}
	if renderer != nil {
		f.renderer = renderer
	}
	return f
}

// FetchDocument fetches url and parses it. The plain session path runs
// first, under retry; when it fails and a renderer is configured, the
// browser path takes over.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (*extract.Document, error) {
	body, err := f.fetchHTML(ctx, url)
	if err != nil {
		if f.renderer == nil || !escalatable(ctx, err) {
			return nil, err
		}
		f.logger.Info("escalating to browser",
			zap.String("url", url),
			zap.String("kind", string(KindOf(err))),
		)
		rendered, rerr := f.renderer.Render(ctx, url, "")
		if rerr != nil {
			// The HTTP-path error is the more useful one.
			return nil, err
		}
		body = rendered
	}

	doc, perr := extract.Parse(body, url)
	if perr != nil {
		return nil, WrapError(KindParse, url, perr)
	}
	return doc, nil
}

// escalatable reports whether the browser path could still succeed
// where the plain HTTP path did not. A page that is genuinely missing
// stays missing in a real browser, and a dead context forbids further
// work; everything else, blocks and transport failures included, gets
// the escalation.
func escalatable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch KindOf(err) {
	case KindNotFound, KindParse, KindDataIntegrity:
		return false
	}
	return true
}

// RenderWithFallback fetches browser-first: pages known to need
// JavaScript go straight to the renderer, and the plain session path
// only serves as the backup. The inverse of FetchDocument's
// escalation.
func (f *Fetcher) RenderWithFallback(ctx context.Context, url, waitSelector string) (string, error) {
	if f.renderer != nil {
		body, err := f.renderer.Render(ctx, url, waitSelector)
		if err == nil {
			return body, nil
		}
		f.logger.Warn("browser render failed, falling back to plain fetch",
			zap.String("url", url),
			zap.Error(err),
		)
	}
	return f.fetchHTML(ctx, url)
}

// fetchHTML runs the session GET under the retry policy and the block
// detector. Each attempt uses a fresh session identity; a blocked
// attempt burns its session.
func (f *Fetcher) fetchHTML(ctx context.Context, url string) (string, error) {
	var body string
	err := f.retrier.Do(ctx, func(ctx context.Context) error {
		if err := f.limiter.Wait(ctx); err != nil {
			return err
		}

		key := uuid.NewString()
		session, err := f.sessions.Acquire(ctx, key)
		if err != nil {
			return err
		}

		resp, err := session.Get(ctx, url)
		if err != nil {
			f.record(false, 0, false)
			return err
		}

		if f.detector.Blocked(resp.StatusCode, resp.Body) {
			f.sessions.Rotate(key)
			f.record(false, resp.Duration, true)
			f.logger.Warn("request blocked",
				zap.String("url", url),
				zap.Int("status", resp.StatusCode),
				zap.Int("body_bytes", len(resp.Body)),
			)
			return BlockedError(url, resp.StatusCode)
		}

		// Non-blocked error pages flow through: whether a 404 page
		// means "entity missing" is the extraction layer's call.
		f.record(true, resp.Duration, false)
		body = string(resp.Body)
		return nil
	})
	if err != nil {
		return "", err
	}
	return body, nil
}

// SessionStats exposes the session pool snapshot.
func (f *Fetcher) SessionStats() SessionStats { return f.sessions.Stats() }

// RetryStats exposes the retry policy snapshot.
func (f *Fetcher) RetryStats() RetryStats { return f.retrier.Stats() }

func (f *Fetcher) record(success bool, elapsed time.Duration, blocked bool) {
	if f.mon != nil {
		f.mon.RecordRequest(success, elapsed, blocked)
	}
}
