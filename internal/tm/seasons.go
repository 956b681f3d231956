package tm

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/footdata/transfermarkt-api/internal/extract"
)

// CompetitionSeasons lists every season in a competition's season
// filter, newest first. Names keep the site's format ("25/26" or
// "2025"); the parsed years sit alongside.
func (s *Scraper) CompetitionSeasons(ctx context.Context, competitionID string) (*CompetitionSeasonsResponse, error) {
	doc, err := s.fetch(ctx, competitionURL(competitionID))
	if err != nil {
		return nil, err
	}
	if err := requireSelector(doc, competitionProfileName, "competition"); err != nil {
		return nil, err
	}

	return &CompetitionSeasonsResponse{
		ID:      competitionID,
		Name:    doc.Text(competitionProfileName, extract.TextOptions{Pos: 1}),
		Seasons: parseSeasons(doc),
	}, nil
}

// parseSeasons reads the season filter cell. Its text nodes hold the
// options as whitespace-separated tokens plus "Show" button chrome.
func parseSeasons(doc *extract.Document) []Season {
	var tokens []string
	for _, cell := range doc.List(competitionSeasonCell, true) {
		tokens = append(tokens, strings.Fields(cell)...)
	}

	seen := make(map[string]bool)
	seasons := make([]Season, 0, len(tokens))
	for _, token := range tokens {
		name := strings.TrimSpace(token)
		if name == "" || seen[name] || !looksLikeSeason(name) {
			continue
		}
		seen[name] = true

		start, end, ok := seasonYears(name)
		if !ok {
			continue
		}
		seasons = append(seasons, Season{
			SeasonID:   strconv.Itoa(start),
			SeasonName: name,
			StartYear:  start,
			EndYear:    end,
		})
	}

	sort.SliceStable(seasons, func(i, j int) bool {
		return seasons[i].StartYear > seasons[j].StartYear
	})
	return seasons
}

// looksLikeSeason filters chrome like "Show" out of the token stream:
// seasons are either cross-year ("25/26") or a four-digit year.
func looksLikeSeason(name string) bool {
	if strings.Contains(name, "/") {
		return true
	}
	if len(name) != 4 {
		return false
	}
	_, err := strconv.Atoi(name)
	return err == nil
}

// seasonYears parses a season name into its start and end years.
// Two-digit years from 90 up belong to the 1900s ("99/00" is
// 1999/2000); anything lower to the 2000s.
func seasonYears(name string) (start, end int, ok bool) {
	if !strings.Contains(name, "/") {
		year, err := strconv.Atoi(name)
		if err != nil {
			return 0, 0, false
		}
		return year, year, true
	}

	parts := strings.Split(name, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	startPart := strings.TrimSpace(parts[0])
	endPart := strings.TrimSpace(parts[1])

	startNum, err := strconv.Atoi(startPart)
	if err != nil {
		return 0, 0, false
	}
	if len(startPart) == 2 {
		start = expandCentury(startNum)
	} else {
		start = startNum
	}

	endNum, err := strconv.Atoi(endPart)
	if err != nil {
		return 0, 0, false
	}
	if len(endPart) == 2 {
		// "99/00" crosses the century: the end year wraps forward.
		if endNum < start%100 {
			end = 2000 + endNum
		} else if start >= 2000 {
			end = 2000 + endNum
		} else {
			end = 1900 + endNum
		}
	} else {
		end = endNum
	}
	return start, end, true
}

func expandCentury(twoDigit int) int {
	if twoDigit >= 90 {
		return 1900 + twoDigit
	}
	return 2000 + twoDigit
}
