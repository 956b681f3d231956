package scraper

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/monitor"
)

// stealthScript runs before every document loads and hides the usual
// headless-Chrome tells: the webdriver flag, the empty plugin list and
// the permissions API shortcut.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
window.chrome = window.chrome || {runtime: {}};
const originalQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) => (
	parameters.name === 'notifications'
		? Promise.resolve({state: Notification.permission})
		: originalQuery(parameters)
);
`

// Renderer fetches pages through a real browser engine for content the
// plain HTTP path cannot get past the anti-bot layer.
type Renderer struct {
	navTimeout time.Duration
	waitTime   time.Duration
	runHeaded  bool
	simulate   bool

	mon    *monitor.Monitor
	logger *zap.Logger
}

// NewRenderer builds a Renderer from config. The monitor may be nil.
func NewRenderer(cfg *config.Config, mon *monitor.Monitor, logger *zap.Logger) *Renderer {
	return &Renderer{
		navTimeout: cfg.NavTimeout(),
		waitTime:   time.Duration(cfg.Browser.WaitTimeoutMs) * time.Millisecond,
		runHeaded:  !cfg.Browser.Headless,
		simulate:   cfg.Browser.BehavioralSimulation,
		mon:        mon,
		logger:     logger,
	}
}

// Render navigates to url in a fresh browser instance and returns the
// rendered HTML. waitSelector, when non-empty, is a CSS selector to
// wait for before capture; a missed wait is logged, not fatal. Every
// call gets its own browser so nothing leaks between requests.
func (r *Renderer) Render(ctx context.Context, url, waitSelector string) (string, error) {
	ua := randomUserAgent()
	vp := randomViewport()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !r.runHeaded),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(ua),
		chromedp.WindowSize(vp.width, vp.height),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, r.navTimeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		emulation.SetLocaleOverride().WithLocale("en-DK"),
		emulation.SetTimezoneOverride("Europe/Copenhagen"),
		emulation.SetGeolocationOverride().
			WithLatitude(55.6761).
			WithLongitude(12.5683).
			WithAccuracy(100),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return r.settle(ctx, vp, waitSelector)
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if r.mon != nil {
			r.mon.RecordBrowserRequest(false)
		}
		return "", WrapError(KindConnection, url, fmt.Errorf("browser render: %w", err))
	}
	if r.mon != nil {
		r.mon.RecordBrowserRequest(true)
	}
	r.logger.Debug("page rendered",
		zap.String("url", url),
		zap.Int("bytes", len(html)),
	)
	return html, nil
}

// settle gives the page time to finish loading dynamic content and,
// when enabled, makes the visit look human before capture.
func (r *Renderer) settle(ctx context.Context, vp viewport, waitSelector string) error {
	if waitSelector != "" {
		waitCtx, cancel := context.WithTimeout(ctx, r.waitTime)
		err := chromedp.WaitVisible(waitSelector, chromedp.ByQuery).Do(waitCtx)
		cancel()
		if err != nil {
			r.logger.Debug("wait selector missed", zap.String("selector", waitSelector))
		}
	}

	if err := waitNetworkQuiet(ctx, 500*time.Millisecond, r.waitTime); err != nil {
		return err
	}

	if r.simulate {
		return r.simulateReading(ctx, vp)
	}
	return sleepJitter(ctx, 200, 500)
}

// waitNetworkQuiet blocks until no network request has started or
// finished for quiet, bounded by limit. Pages that poll forever never
// go fully idle, so the bound always wins eventually.
func waitNetworkQuiet(ctx context.Context, quiet, limit time.Duration) error {
	if err := network.Enable().Do(ctx); err != nil {
		return err
	}

	activity := make(chan struct{}, 1)
	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent, *network.EventLoadingFinished, *network.EventLoadingFailed:
			select {
			case activity <- struct{}{}:
			default:
			}
		}
	})

	bound := time.NewTimer(limit)
	defer bound.Stop()
	idle := time.NewTimer(quiet)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-bound.C:
			return nil
		case <-idle.C:
			return nil
		case <-activity:
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(quiet)
		}
	}
}

// simulateReading scrolls and moves the pointer the way a person
// skimming the page would.
func (r *Renderer) simulateReading(ctx context.Context, vp viewport) error {
	if err := sleepJitter(ctx, 500, 1000); err != nil {
		return err
	}

	scroll := 300 + rand.Intn(500)
	script := fmt.Sprintf("window.scrollTo({top: %d, behavior: 'smooth'})", scroll)
	if err := chromedp.Evaluate(script, nil).Do(ctx); err != nil {
		return err
	}
	if err := sleepJitter(ctx, 300, 700); err != nil {
		return err
	}

	moves := 1 + rand.Intn(3)
	for i := 0; i < moves; i++ {
		x := float64(rand.Intn(vp.width))
		y := float64(rand.Intn(vp.height))
		ev := input.DispatchMouseEvent(input.MouseMoved, x, y)
		if err := ev.Do(ctx); err != nil {
			return err
		}
		if err := sleepJitter(ctx, 100, 300); err != nil {
			return err
		}
	}

	return chromedp.Evaluate("window.scrollTo({top: 0, behavior: 'smooth'})", nil).Do(ctx)
}

func sleepJitter(ctx context.Context, minMs, maxMs int) error {
	d := time.Duration(minMs+rand.Intn(maxMs-minMs)) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
