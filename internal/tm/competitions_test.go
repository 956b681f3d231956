package tm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footdata/transfermarkt-api/internal/scraper"
)

const leaguePage = `<html><body>
<div class="data-header__headline-container"><h1>Premier League</h1></div>
<table class="items"><tbody>
<tr><td class="hauptlink no-border-links"><a href="/manchester-city/startseite/verein/281">Man City</a></td></tr>
<tr><td class="hauptlink no-border-links"><a href="/arsenal-fc/startseite/verein/11">Arsenal</a></td></tr>
</tbody></table>
</body></html>`

func TestCompetitionClubsLeague(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/startseite/wettbewerb/GB1": leaguePage})

	resp, err := s.CompetitionClubs(context.Background(), "GB1", "2024")
	require.NoError(t, err)

	assert.Equal(t, "GB1", resp.ID)
	assert.Equal(t, "Premier League", resp.Name)
	assert.Equal(t, "2024", resp.SeasonID)
	require.Len(t, resp.Clubs, 2)
	assert.Equal(t, ClubRef{ID: "281", Name: "Man City"}, resp.Clubs[0])
	assert.Equal(t, ClubRef{ID: "11", Name: "Arsenal"}, resp.Clubs[1])
}

const currentLeaguePage = `<html><body>
<div class="data-header__headline-container"><h1>Premier League</h1></div>
<table class="items"><tbody>
<tr><td class="hauptlink no-border-links"><a href="/manchester-city/startseite/verein/281/saison_id/2025">Man City</a></td></tr>
<tr><td class="hauptlink no-border-links"><a href="/arsenal-fc/startseite/verein/11/saison_id/2025">Arsenal</a></td></tr>
</tbody></table>
</body></html>`

func TestCompetitionClubsReportsServedSeason(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/startseite/wettbewerb/GB1": currentLeaguePage})

	resp, err := s.CompetitionClubs(context.Background(), "GB1", "")
	require.NoError(t, err)

	assert.Equal(t, "2025", resp.SeasonID, "season comes from the served permalinks when the request names none")
	require.Len(t, resp.Clubs, 2)
	assert.Equal(t, "281", resp.Clubs[0].ID)
}

const mismatchedLeaguePage = `<html><body>
<div class="data-header__headline-container"><h1>Broken League</h1></div>
<table class="items"><tbody>
<tr><td class="hauptlink no-border-links"><a href="/manchester-city/startseite/verein/281">Man City</a><a>Extra</a></td></tr>
</tbody></table>
</body></html>`

func TestCompetitionClubsMismatchFailsLoudly(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/startseite/wettbewerb/XX1": mismatchedLeaguePage})

	_, err := s.CompetitionClubs(context.Background(), "XX1", "2024")
	assertKind(t, err, scraper.KindDataIntegrity)
}

const worldCupPage = `<html><body>
<div class="data-header__headline-container"><h1>Participating teams in the World Cup 2006 - Participants</h1></div>
<h2>Clubs starting into tournament at a later point</h2>
<table><tbody>
<tr><td class="hauptlink no-border-links"><a href="/deutschland/startseite/nationalmannschaft/3262">Germany</a></td></tr>
<tr><td class="hauptlink no-border-links"><a href="/italien/startseite/nationalmannschaft/3376">Italy</a></td></tr>
<tr><td class="hauptlink no-border-links"><a href="/brasilien/startseite/nationalmannschaft/3439">Brazil</a></td></tr>
</tbody></table>
</body></html>`

func TestCompetitionClubsTournament(t *testing.T) {
	t.Parallel()

	// The participants page for the 2006 tournament lives under the
	// 2005 saison_id.
	s := newTestScraper(t, map[string]string{"world-cup/teilnehmer/pokalwettbewerb/FIWC/saison_id/2005": worldCupPage})

	resp, err := s.CompetitionClubs(context.Background(), "FIWC", "2006")
	require.NoError(t, err)

	assert.Equal(t, "World Cup 2006", resp.Name, "participants boilerplate is stripped")
	assert.Equal(t, "2006", resp.SeasonID, "the response keeps the caller's season, not the URL's")
	require.Len(t, resp.Clubs, 2, "rows beyond the configured field size are not participants")
	assert.Equal(t, "3262", resp.Clubs[0].ID)
	assert.Equal(t, "3376", resp.Clubs[1].ID)
}

const worldCupSeasonedPage = `<html><body>
<div class="data-header__headline-container"><h1>Participating teams in the World Cup 2006 - Participants</h1></div>
<h2>Clubs starting into tournament at a later point</h2>
<table><tbody>
<tr><td class="hauptlink no-border-links"><a href="/deutschland/startseite/nationalmannschaft/3262/saison_id/2005">Germany</a></td></tr>
<tr><td class="hauptlink no-border-links"><a href="/italien/startseite/nationalmannschaft/3376/saison_id/2005">Italy</a></td></tr>
</tbody></table>
</body></html>`

func TestCompetitionClubsTournamentSeasonFromPermalinks(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"world-cup/teilnehmer/pokalwettbewerb/FIWC": worldCupSeasonedPage})

	resp, err := s.CompetitionClubs(context.Background(), "FIWC", "")
	require.NoError(t, err)

	// Permalinks carry the offset page season 2005; the response
	// reports the tournament year.
	assert.Equal(t, "2006", resp.SeasonID)
	require.Len(t, resp.Clubs, 2)
}

const clubFixturesPage = `<html><body>
<h2>Record</h2>
<table><tbody>
<tr><td><a href="/premier-league/startseite/wettbewerb/GB1">Premier League</a></td></tr>
<tr><td><a href="/uefa-champions-league/startseite/pokalwettbewerb/CL">Champions League</a></td></tr>
<tr><td>No link here</td></tr>
</tbody></table>
</body></html>`

func TestClubCompetitions(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/spielplan/verein/281": clubFixturesPage})

	resp, err := s.ClubCompetitions(context.Background(), "281", "2024")
	require.NoError(t, err)

	assert.Equal(t, "281", resp.ID)
	assert.Equal(t, "2024", resp.SeasonID)
	require.Len(t, resp.Competitions, 2)
	assert.Equal(t, CompetitionRef{ID: "GB1", Name: "Premier League", URL: "/premier-league/startseite/wettbewerb/GB1"}, resp.Competitions[0])
	assert.Equal(t, "CL", resp.Competitions[1].ID)
}

const seasonsPage = `<html><body>
<div class="data-header__headline-container"><h1>Premier League</h1></div>
<table><tbody>
<tr>
	<td>Filter by season:</td>
	<td>25/26 24/25 99/00 1998 Show</td>
</tr>
</tbody></table>
</body></html>`

func TestCompetitionSeasons(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/startseite/wettbewerb/GB1": seasonsPage})

	resp, err := s.CompetitionSeasons(context.Background(), "GB1")
	require.NoError(t, err)
	assert.Equal(t, "Premier League", resp.Name)
	require.Len(t, resp.Seasons, 4)

	// Newest first, with century inference on two-digit years.
	assert.Equal(t, Season{SeasonID: "2025", SeasonName: "25/26", StartYear: 2025, EndYear: 2026}, resp.Seasons[0])
	assert.Equal(t, Season{SeasonID: "2024", SeasonName: "24/25", StartYear: 2024, EndYear: 2025}, resp.Seasons[1])
	assert.Equal(t, Season{SeasonID: "1999", SeasonName: "99/00", StartYear: 1999, EndYear: 2000}, resp.Seasons[2])
	assert.Equal(t, Season{SeasonID: "1998", SeasonName: "1998", StartYear: 1998, EndYear: 1998}, resp.Seasons[3])
}
