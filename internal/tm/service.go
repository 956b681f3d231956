// Package tm extracts structured football data from transfermarkt.com
// pages: search results, club profiles, squads and competition
// listings. Field values come out as the site prints them; parsing
// money strings or dates into native types is left to consumers.
package tm

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/config"
	"github.com/footdata/transfermarkt-api/internal/extract"
	"github.com/footdata/transfermarkt-api/internal/scraper"
)

const baseURL = "https://www.transfermarkt.com"

// documentFetcher is the slice of the fetch pipeline the services
// need. Tests substitute a fixture-backed implementation.
type documentFetcher interface {
	FetchDocument(ctx context.Context, url string) (*extract.Document, error)
}

// Scraper bundles the extraction services behind one API surface.
type Scraper struct {
	fetcher     documentFetcher
	tournaments map[string]config.TournamentConfig
	logger      *zap.Logger
}

// NewScraper builds the service layer on top of a fetch pipeline.
func NewScraper(fetcher documentFetcher, cfg *config.Config, logger *zap.Logger) *Scraper {
	return &Scraper{
		fetcher:     fetcher,
		tournaments: cfg.Tournaments,
		logger:      logger,
	}
}

func (s *Scraper) fetch(ctx context.Context, pageURL string) (*extract.Document, error) {
	start := time.Now()
	doc, err := s.fetcher.FetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("page fetched",
		zap.String("url", pageURL),
		zap.Duration("elapsed", time.Since(start)),
	)
	return doc, nil
}

// requireSelector turns an empty match on a must-have selector into a
// not-found error: the page loaded but does not hold the entity.
func requireSelector(doc *extract.Document, selector, what string) error {
	if doc.Has(selector) {
		return nil
	}
	return scraper.NotFoundError(doc.URL(), fmt.Sprintf("%s not found", what))
}

func searchURL(kind, query string, page int) string {
	return fmt.Sprintf("%s/schnellsuche/ergebnis/schnellsuche?query=%s&%s_page=%d",
		baseURL, url.QueryEscape(query), kind, page)
}

func clubProfileURLFor(clubID string) string {
	return fmt.Sprintf("%s/-/startseite/verein/%s", baseURL, url.PathEscape(clubID))
}

func clubPlayersURL(clubID, seasonID string) string {
	u := fmt.Sprintf("%s/-/kader/verein/%s", baseURL, url.PathEscape(clubID))
	if seasonID != "" {
		u += "/saison_id/" + url.PathEscape(seasonID)
	}
	return u + "/plus/1"
}

func clubCompetitionsURL(clubID, seasonID string) string {
	return fmt.Sprintf("%s/-/spielplan/verein/%s/plus/0?saison_id=%s",
		baseURL, url.PathEscape(clubID), url.QueryEscape(seasonID))
}

func competitionURL(competitionID string) string {
	return fmt.Sprintf("%s/-/startseite/wettbewerb/%s", baseURL, url.PathEscape(competitionID))
}

func competitionClubsURL(competitionID, seasonID string) string {
	return fmt.Sprintf("%s/-/startseite/wettbewerb/%s/plus/?saison_id=%s",
		baseURL, url.PathEscape(competitionID), url.QueryEscape(seasonID))
}

func tournamentParticipantsURL(slug, competitionID, seasonID string) string {
	return fmt.Sprintf("%s/%s/teilnehmer/pokalwettbewerb/%s/saison_id/%s",
		baseURL, slug, url.PathEscape(competitionID), url.PathEscape(seasonID))
}
