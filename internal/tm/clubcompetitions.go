package tm

import (
	"context"
	"strconv"
	"time"

	"github.com/antchfx/htmlquery"

	"github.com/footdata/transfermarkt-api/internal/extract"
)

// ClubCompetitions lists the competitions a club plays in for a
// season, read from the record table on its fixtures page. An empty
// seasonID defaults to the current calendar year.
func (s *Scraper) ClubCompetitions(ctx context.Context, clubID, seasonID string) (*ClubCompetitionsResponse, error) {
	if seasonID == "" {
		seasonID = strconv.Itoa(time.Now().Year())
	}
	doc, err := s.fetch(ctx, clubCompetitionsURL(clubID, seasonID))
	if err != nil {
		return nil, err
	}
	if err := requireSelector(doc, clubRecordTable, "club record table"); err != nil {
		return nil, err
	}

	table := extract.FromNode(doc.Nodes(clubRecordTable)[0], doc.URL())

	var competitions []CompetitionRef
	for _, rowNode := range table.Nodes(clubRecordRows) {
		row := extract.FromNode(rowNode, doc.URL())
		links := row.Nodes(clubRecordLinks)
		if len(links) == 0 {
			continue
		}

		href := htmlquery.SelectAttr(links[0], "href")
		id := idFromURL(href)
		name := extract.Clean(htmlquery.InnerText(links[0]))
		if id == "" || name == "" {
			continue
		}
		competitions = append(competitions, CompetitionRef{ID: id, Name: name, URL: href})
	}

	return &ClubCompetitionsResponse{
		ID:           clubID,
		SeasonID:     seasonID,
		Competitions: competitions,
	}, nil
}
