package tm

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"

	"github.com/footdata/transfermarkt-api/internal/extract"
)

// rosterLayout is the shape of a squad table. Club pages wrap player
// info in td.posrela cells; national-team pages use a flat table that
// may repeat players.
type rosterLayout int

const (
	layoutClub rosterLayout = iota
	layoutNationalTeam
)

// classifyRoster decides the table shape from the DOM alone, once per
// page, before any extraction.
func classifyRoster(doc *extract.Document) rosterLayout {
	q := goquery.NewDocumentFromNode(doc.Root())
	table := q.Find("div#yw1 table.items")
	if table.Find("td.posrela").Length() == 0 && table.Find("td.hauptlink a[href*='/profil/spieler']").Length() > 0 {
		return layoutNationalTeam
	}
	return layoutClub
}

// ClubPlayers fetches a club's squad for a season and assembles one
// record per player. An empty seasonID means the current season; the
// effective season is read back from the page.
func (s *Scraper) ClubPlayers(ctx context.Context, clubID, seasonID string) (*ClubPlayersResponse, error) {
	doc, err := s.fetch(ctx, clubPlayersURL(clubID, seasonID))
	if err != nil {
		return nil, err
	}
	if err := requireSelector(doc, rosterClubName, "club"); err != nil {
		return nil, err
	}

	layout := classifyRoster(doc)

	var players []RosterPlayer
	if layout == layoutNationalTeam {
		players = s.parseNationalSquad(doc)
	} else {
		players = s.parseClubSquad(doc)
	}
	s.logger.Debug("squad parsed",
		zap.String("club_id", clubID),
		zap.Int("players", len(players)),
		zap.Bool("national_team", layout == layoutNationalTeam),
	)

	return &ClubPlayersResponse{ID: clubID, Players: players}, nil
}

// parseClubSquad reads the posrela-shaped table. Column lists are
// aligned on the permalink count; past-season squads swap the joined
// and contract columns for the player's current club.
func (s *Scraper) parseClubSquad(doc *extract.Document) []RosterPlayer {
	past := pastSeason(doc)

	urls := doc.List(rosterURLs, true)
	n := len(urls)

	names := extract.Align(doc.List(rosterNames, true), n, "")
	positions := extract.Align(doc.List(rosterPositions, true), n, "")
	dobAges := extract.Align(doc.List(rosterDOBAge, true), n, "")
	heights := extract.Align(doc.List(rosterHeights, true), n, "")
	foots := extract.Align(doc.List(rosterFoots, false), n, "")
	values := extract.Align(doc.List(rosterMarketValues, true), n, "")

	var contracts, currentClubs []string
	if past {
		contracts = make([]string, n)
		currentClubs = extract.Align(doc.List(rosterCurrentClub, true), n, "")
	} else {
		contracts = extract.Align(doc.List(rosterContracts, true), n, "")
		currentClubs = make([]string, n)
	}

	nationalities := extract.Align(cellLists(doc, rosterNationalities, rosterRowNationalities), n, []string{})
	joined := extract.Align(cellJoins(doc, rosterInfoCells, rosterCellJoined), n, "")
	statuses := extract.Align(cellJoins(doc, rosterInfoCells, rosterCellStatuses), n, "")
	signedFrom := extract.Align(cellJoins(doc, rosterSignedFrom, rosterCellSignedFrom), n, "")
	joinedOn := extract.Align(cellJoins(doc, rosterJoinedOn, rosterCellText), n, "")

	players := make([]RosterPlayer, 0, n)
	for i, u := range urls {
		dob, age := splitDOBAge(dobAges[i])
		players = append(players, RosterPlayer{
			ID:          idFromURL(u),
			Name:        names[i],
			Position:    positions[i],
			DateOfBirth: dob,
			Age:         age,
			Nationality: nationalities[i],
			CurrentClub: currentClubs[i],
			Height:      heights[i],
			Foot:        foots[i],
			JoinedOn:    joinedOn[i],
			Joined:      joined[i],
			SignedFrom:  signedFrom[i],
			Contract:    contracts[i],
			MarketValue: values[i],
			Status:      statuses[i],
		})
	}
	return players
}

// parseNationalSquad reads the flat national-team table. The same
// player can appear in several rows; each permalink yields exactly one
// record, filled from the first row that carries it.
func (s *Scraper) parseNationalSquad(doc *extract.Document) []RosterPlayer {
	rows := doc.Nodes(rosterNationalRows)

	seen := make(map[string]bool)
	var players []RosterPlayer
	for _, u := range doc.List(rosterNationalURLs, true) {
		if seen[u] {
			continue
		}
		seen[u] = true

		player := RosterPlayer{
			ID:          idFromURL(u),
			Nationality: []string{},
		}
		for _, rowNode := range rows {
			row := extract.FromNode(rowNode, doc.URL())
			if !containsURL(row.List(rosterNationalRowURLs, true), u) {
				continue
			}
			player.Name = row.Text(rosterNationalRowName, extract.TextOptions{Pos: 1})
			tds := row.Nodes(".//td")
			// Flat rows put position in the fifth cell and the
			// combined birth date in the sixth.
			if len(tds) > 4 {
				player.Position = extract.Clean(htmlquery.InnerText(tds[4]))
			}
			if len(tds) > 5 {
				player.DateOfBirth, player.Age = splitDOBAge(extract.Clean(htmlquery.InnerText(tds[5])))
			}
			player.Nationality = row.List(rosterRowNationalities, true)
			break
		}
		players = append(players, player)
	}
	return players
}

// pastSeason reports whether the page shows a historical squad, which
// changes the column layout.
func pastSeason(doc *extract.Document) bool {
	for _, cell := range doc.List(rosterPastFlag, true) {
		if cell == "Current club" {
			return true
		}
	}
	return false
}

// cellLists extracts a list of values per matched cell.
func cellLists(doc *extract.Document, cellSelector, valueSelector string) [][]string {
	cells := doc.Nodes(cellSelector)
	out := make([][]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, extract.FromNode(c, doc.URL()).List(valueSelector, true))
	}
	return out
}

// cellJoins extracts one "; "-joined value per matched cell.
func cellJoins(doc *extract.Document, cellSelector, valueSelector string) []string {
	cells := doc.Nodes(cellSelector)
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, extract.FromNode(c, doc.URL()).Text(valueSelector, extract.TextOptions{JoinWith: "; "}))
	}
	return out
}

func containsURL(urls []string, target string) bool {
	for _, u := range urls {
		if u == target {
			return true
		}
	}
	return false
}
