package tm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/extract"
	"github.com/footdata/transfermarkt-api/internal/scraper"
)

// SearchCompetitions runs a competition quick-search. Columns are
// positional lists padded to the permalink count, since some
// competitions miss a country flag or continent cell.
func (s *Scraper) SearchCompetitions(ctx context.Context, query string, page int) (*CompetitionSearchResponse, error) {
	if page < 1 {
		page = 1
	}
	doc, err := s.fetch(ctx, searchURL("Wettbewerb", query, page))
	if err != nil {
		return nil, err
	}

	urls := doc.List(competitionSearchURLs, true)
	n := len(urls)
	names := extract.Align(doc.List(competitionSearchNames, true), n, "")
	countries := extract.Align(doc.List(competitionSearchCountries, true), n, "")
	clubs := extract.Align(doc.List(competitionSearchClubs, true), n, "")
	players := extract.Align(doc.List(competitionSearchPlayers, true), n, "")
	totals := extract.Align(doc.List(competitionSearchTotalValues, true), n, "")
	means := extract.Align(doc.List(competitionSearchMeanValues, true), n, "")
	continents := extract.Align(doc.List(competitionSearchContinents, true), n, "")

	results := make([]CompetitionSearchResult, 0, n)
	for i, u := range urls {
		results = append(results, CompetitionSearchResult{
			ID:               idFromURL(u),
			Name:             names[i],
			Country:          countries[i],
			Clubs:            clubs[i],
			Players:          players[i],
			TotalMarketValue: totals[i],
			MeanMarketValue:  means[i],
			Continent:        continents[i],
		})
	}

	return &CompetitionSearchResponse{
		Query:          query,
		PageNumber:     page,
		LastPageNumber: doc.LastPageNumber(competitionSearchBase),
		Results:        results,
	}, nil
}

// CompetitionClubs lists the clubs of a competition season. League
// pages list their table; tournaments read the participants page
// instead, truncated to the configured field size so not-yet-qualified
// teams below the main table stay out.
func (s *Scraper) CompetitionClubs(ctx context.Context, competitionID, seasonID string) (*CompetitionClubsResponse, error) {
	tournament, isTournament := s.tournaments[competitionID]

	var pageURL string
	if isTournament {
		pageURL = tournamentParticipantsURL(tournament.Slug, competitionID, offsetSeason(seasonID, tournament.SeasonOffset))
	} else {
		pageURL = competitionClubsURL(competitionID, seasonID)
	}

	doc, err := s.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	if err := requireSelector(doc, competitionProfileName, "competition"); err != nil {
		return nil, err
	}

	var urls, names []string
	if isTournament {
		urls = doc.List(participantURLs, true)
		names = doc.List(participantNames, true)
		switch {
		case tournament.Size <= 0:
			s.logger.Warn("tournament has no configured field size, keeping all rows",
				zap.String("competition_id", competitionID),
			)
		case len(urls) > tournament.Size:
			urls = urls[:tournament.Size]
			names = names[:tournament.Size]
		}
	} else {
		urls = doc.List(competitionClubsURLs, true)
		names = doc.List(competitionClubsNames, true)
	}

	// Club rows must pair an ID with a name; differing counts mean the
	// page parsed into misaligned columns, which is worse than failing.
	if len(urls) != len(names) {
		s.logger.Error("club list misaligned",
			zap.String("competition_id", competitionID),
			zap.Int("ids", len(urls)),
			zap.Int("names", len(names)),
		)
		return nil, scraper.DataIntegrityError(doc.URL(),
			fmt.Sprintf("found %d club ids but %d names for competition %s", len(urls), len(names), competitionID))
	}

	clubs := make([]ClubRef, 0, len(urls))
	for i, u := range urls {
		clubs = append(clubs, ClubRef{ID: idFromURL(u), Name: names[i]})
	}

	season := resolvedSeason(urls, "")
	switch {
	case season == "":
		season = seasonID
	case isTournament:
		// Permalinks on participants pages carry the offset page
		// season; report the tournament year.
		season = offsetSeason(season, -tournament.SeasonOffset)
	}

	return &CompetitionClubsResponse{
		ID:       competitionID,
		Name:     competitionName(doc, isTournament),
		SeasonID: season,
		Clubs:    clubs,
	}, nil
}

// resolvedSeason reads the season out of the served club permalinks, so
// a request without an explicit season reports the season the site
// actually delivered. Falls back when no permalink carries one.
func resolvedSeason(urls []string, fallback string) string {
	for _, u := range urls {
		if sid := seasonIDFromURL(u); sid != "" {
			return sid
		}
	}
	return fallback
}

// competitionName reads the page headline. Tournament participant
// pages decorate the name with boilerplate that gets stripped.
func competitionName(doc *extract.Document, isTournament bool) string {
	name := doc.Text(competitionProfileName, extract.TextOptions{Pos: 1})
	if !isTournament || name == "" {
		return name
	}
	name = strings.ReplaceAll(name, "Participating teams in the ", "")
	name = strings.ReplaceAll(name, " - Participants", "")
	if strings.Contains(name, " - ") {
		parts := strings.Split(name, " - ")
		picked := strings.TrimSpace(parts[0])
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if !strings.Contains(p, "Participants") && len(p) > 3 {
				picked = p
				break
			}
		}
		name = picked
	}
	return strings.TrimSpace(strings.ReplaceAll(name, "Participants", ""))
}

// offsetSeason shifts a numeric season by the tournament's URL offset:
// the 2006 World Cup page lives under saison_id 2005.
func offsetSeason(seasonID string, offset int) string {
	year, err := strconv.Atoi(seasonID)
	if err != nil {
		return seasonID
	}
	return strconv.Itoa(year - offset)
}
