package tm

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/extract"
	"github.com/footdata/transfermarkt-api/internal/scraper"
)

// stubFetcher serves canned pages keyed by URL substring.
type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) FetchDocument(_ context.Context, url string) (*extract.Document, error) {
	for key, page := range f.pages {
		if strings.Contains(url, key) {
			return extract.Parse(page, url)
		}
	}
	return nil, scraper.NewError(scraper.KindConnection, url, "no fixture for url")
}

func newTestScraper(t *testing.T, pages map[string]string) *Scraper {
	t.Helper()
	cfg := &config.Config{
		Tournaments: map[string]config.TournamentConfig{
			"FIWC": {Slug: "world-cup", Size: 2, SeasonOffset: 1},
		},
	}
	return NewScraper(&stubFetcher{pages: pages}, cfg, zap.NewNop())
}

func replacePagination(page, pager string) string {
	return strings.ReplaceAll(page, "PAGINATION", pager)
}

func assertKind(t *testing.T, err error, want scraper.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := scraper.KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

func pagination(last int) string {
	return fmt.Sprintf(`<div class="tm-pagination"><ul>
<li class="tm-pagination__list-item"><a href="/x/page/1">1</a></li>
<li class="tm-pagination__list-item tm-pagination__list-item--icon-last-page"><a href="/x/page/%d">last</a></li>
</ul></div>`, last)
}
