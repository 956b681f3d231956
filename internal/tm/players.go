package tm

import (
	"context"

	"github.com/footdata/transfermarkt-api/internal/extract"
)

// SearchPlayers runs a player quick-search and assembles one record
// per result row. Extraction is row-relative: every field is read from
// its own row, so a missing cell cannot shift values between players.
func (s *Scraper) SearchPlayers(ctx context.Context, query string, page int) (*PlayerSearchResponse, error) {
	if page < 1 {
		page = 1
	}
	doc, err := s.fetch(ctx, searchURL("Spieler", query, page))
	if err != nil {
		return nil, err
	}
	if err := requireSelector(doc, playerSearchFound, "player search results"); err != nil {
		return nil, err
	}

	rows := doc.Nodes(playerSearchResults)
	results := make([]PlayerSearchResult, 0, len(rows))
	for _, node := range rows {
		row := extract.FromNode(node, doc.URL())

		id := idFromURL(row.Text(playerSearchID, extract.TextOptions{Pos: 1}))
		if id == "" {
			continue
		}

		results = append(results, PlayerSearchResult{
			ID:       id,
			Name:     row.Text(playerSearchName, extract.TextOptions{Pos: 1}),
			Position: row.Text(playerSearchPosition, extract.TextOptions{Pos: 1}),
			Club: ClubRef{
				ID:   clubIDFromCrest(row.Text(playerSearchClubImage, extract.TextOptions{Pos: 1})),
				Name: row.Text(playerSearchClubName, extract.TextOptions{Pos: 1}),
			},
			Age:           row.Text(playerSearchAge, extract.TextOptions{Pos: 1}),
			Nationalities: row.List(playerSearchNationalities, true),
			MarketValue:   row.Text(playerSearchMarketValue, extract.TextOptions{Pos: 1}),
		})
	}

	return &PlayerSearchResponse{
		Query:          query,
		PageNumber:     page,
		LastPageNumber: doc.LastPageNumber(playerSearchBase),
		Results:        results,
	}, nil
}
