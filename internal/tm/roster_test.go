package tm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/footdata/transfermarkt-api/internal/extract"
)

func clubRow(class, slug, id, name, position, dobAge, signedFrom, joinedOn, height, foot, value string, flags []string, status string) string {
	flagCell := "<td>"
	for _, f := range flags {
		flagCell += `<img class="flaggenrahmen" title="` + f + `"/>`
	}
	flagCell += "</td>"
	if len(flags) == 0 {
		flagCell = "<td></td>"
	}

	statusSpan := ""
	if status != "" {
		statusSpan = `<span class="verletzt-table" title="` + status + `"></span>`
	}
	valueCell := ""
	if value != "" {
		valueCell = `<td class="rechts hauptlink"><a>` + value + `</a></td>`
	}
	signedCell := `<td class="zentriert"></td>`
	if signedFrom != "" {
		signedCell = `<td class="zentriert"><a><img title="` + signedFrom + `"/></a></td>`
	}

	return `<tr class="` + class + `">
	<td class="posrela">
		<table class="inline-table"><tr>
			<td class="hauptlink"><a href="/` + slug + `/profil/spieler/` + id + `">` + name + `</a>` + statusSpan + `</td>
		</tr></table>
		<span><a title="` + joinedOn + `"></a></span>
	</td>
	<td class="zentriert">` + position + `</td>
	<td class="zentriert">` + dobAge + `</td>
	` + flagCell + `
	` + signedCell + `
	<td class="zentriert">` + joinedOn + `</td>
	<td class="zentriert">` + height + `</td>
	<td class="zentriert">` + foot + `</td>
	` + valueCell + `
</tr>`
}

func clubSquadPage(rows string) string {
	return `<html><body>
<div class="data-header__headline-container"><h1>Manchester City</h1></div>
<li id="overview"><a href="/manchester-city/startseite/verein/281/saison_id/2024"></a></li>
<div id="yw1"><table class="items">
<thead><tr><th>#</th><th>Player</th></tr></thead>
<tbody>` + rows + `</tbody>
</table></div>
</body></html>`
}

func TestClubPlayersAssemblesAlignedRecords(t *testing.T) {
	t.Parallel()

	rows := clubRow("odd", "erling-haaland", "418560", "Erling Haaland", "Centre-Forward",
		"Jul 21, 2000 (24)", "Borussia Dortmund", "Jul 1, 2022", "1,95m", "left", "€200.00m",
		[]string{"Norway"}, "") +
		clubRow("even", "phil-foden", "406635", "Phil Foden", "Midfielder",
			"May 28, 2000 (24)", "", "Jul 1, 2017", "1,71m", "right", "€130.00m",
			[]string{"England"}, "Injured") +
		clubRow("odd", "trialist", "777777", "Trialist", "Defender",
			"Jan 1, 2004 (21)", "", "Jan 1, 2025", "1,80m", "", "",
			nil, "")

	s := newTestScraper(t, map[string]string{"/kader/verein/281": clubSquadPage(rows)})

	resp, err := s.ClubPlayers(context.Background(), "281", "2024")
	require.NoError(t, err)
	require.Len(t, resp.Players, 3)

	first := resp.Players[0]
	assert.Equal(t, "418560", first.ID)
	assert.Equal(t, "Erling Haaland", first.Name)
	assert.Equal(t, "Centre-Forward", first.Position)
	assert.Equal(t, "Jul 21, 2000", first.DateOfBirth)
	assert.Equal(t, "24", first.Age)
	assert.Equal(t, []string{"Norway"}, first.Nationality)
	assert.Equal(t, "Borussia Dortmund", first.SignedFrom)
	assert.Equal(t, "1,95m", first.Height)
	assert.Equal(t, "left", first.Foot)
	assert.Equal(t, "€200.00m", first.MarketValue)

	assert.Equal(t, "Injured", resp.Players[1].Status)

	// The last row misses its flag and value cells: those columns are
	// shorter than the permalink column and pad at the tail instead of
	// shifting a neighbor's values down.
	last := resp.Players[2]
	assert.Equal(t, "777777", last.ID)
	assert.Equal(t, "Trialist", last.Name)
	assert.Empty(t, last.Nationality)
	assert.Equal(t, "", last.MarketValue)
}

func TestClubPlayersNotFound(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/kader/verein/": "<html><body><p>error</p></body></html>"})
	_, err := s.ClubPlayers(context.Background(), "281", "")
	require.Error(t, err)
}

const nationalSquadPage = `<html><body>
<div class="data-header__headline-container"><h1>Norway</h1></div>
<div id="yw1"><table class="items"><tbody>
<tr class="odd">
	<td>1</td>
	<td><img class="flaggenrahmen" title="Norway"/></td>
	<td class="hauptlink"><a href="/erling-haaland/profil/spieler/418560">Erling Haaland</a></td>
	<td>Manchester City</td>
	<td>Centre-Forward</td>
	<td>Jul 21, 2000 (24)</td>
</tr>
<tr class="even">
	<td>1</td>
	<td><img class="flaggenrahmen" title="Norway"/></td>
	<td class="hauptlink"><a href="/erling-haaland/profil/spieler/418560">Erling Haaland</a></td>
	<td>Manchester City</td>
	<td>Centre-Forward</td>
	<td>Jul 21, 2000 (24)</td>
</tr>
<tr class="odd">
	<td>2</td>
	<td><img class="flaggenrahmen" title="Norway"/></td>
	<td class="hauptlink"><a href="/martin-odegaard/profil/spieler/316264">Martin Ødegaard</a></td>
	<td>Arsenal</td>
	<td>Attacking Midfield</td>
	<td>Dec 17, 1998 (26)</td>
</tr>
</tbody></table></div>
</body></html>`

func TestClubPlayersNationalTeamDeduplicatesRows(t *testing.T) {
	t.Parallel()

	s := newTestScraper(t, map[string]string{"/kader/verein/3435": nationalSquadPage})

	resp, err := s.ClubPlayers(context.Background(), "3435", "2024")
	require.NoError(t, err)
	require.Len(t, resp.Players, 2, "duplicate rows must yield one record per permalink")

	assert.Equal(t, "418560", resp.Players[0].ID)
	assert.Equal(t, "Erling Haaland", resp.Players[0].Name)
	assert.Equal(t, "Centre-Forward", resp.Players[0].Position)
	assert.Equal(t, "Jul 21, 2000", resp.Players[0].DateOfBirth)
	assert.Equal(t, "24", resp.Players[0].Age)
	assert.Equal(t, []string{"Norway"}, resp.Players[0].Nationality)

	assert.Equal(t, "316264", resp.Players[1].ID)
	assert.Equal(t, "Martin Ødegaard", resp.Players[1].Name)
}

func TestClassifyRoster(t *testing.T) {
	t.Parallel()

	club, err := extract.Parse(clubSquadPage(clubRow("odd", "x", "1", "X", "GK",
		"Jan 1, 2000 (25)", "", "Jul 1, 2020", "1,90m", "right", "€1m", []string{"England"}, "")), "u")
	require.NoError(t, err)
	assert.Equal(t, layoutClub, classifyRoster(club))

	national, err := extract.Parse(nationalSquadPage, "u")
	require.NoError(t, err)
	assert.Equal(t, layoutNationalTeam, classifyRoster(national))
}
