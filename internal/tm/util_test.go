package tm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"/erling-haaland/profil/spieler/418560", "418560"},
		{"/manchester-city/startseite/verein/281/saison_id/2024", "281"},
		{"/premier-league/startseite/wettbewerb/GB1", "GB1"},
		{"/world-cup/teilnehmer/pokalwettbewerb/FIWC", "FIWC"},
		{"https://www.transfermarkt.com/arsenal-fc/startseite/verein/11", "11"},
		{"/deutschland/startseite/nationalmannschaft/3262", "3262"},
		{"", ""},
		{"/not/enough", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idFromURL(tt.url), "url %q", tt.url)
	}
}

func TestSeasonIDFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024", seasonIDFromURL("/x/kader/verein/281/saison_id/2024/plus/1"))
	assert.Equal(t, "2023", seasonIDFromURL("/x/spielplan/verein/281/plus/0?saison_id=2023"))
	assert.Equal(t, "", seasonIDFromURL("/x/profil/spieler/1"))
}

func TestClubIDFromCrest(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "281", clubIDFromCrest("/images/wappen/tiny/281.png?lm=1"))
	assert.Equal(t, "", clubIDFromCrest("/images/portrait/small/x.jpg"))
}

func TestSplitDOBAge(t *testing.T) {
	t.Parallel()

	dob, age := splitDOBAge("Jul 21, 2000 (24)")
	assert.Equal(t, "Jul 21, 2000", dob)
	assert.Equal(t, "24", age)

	dob, age = splitDOBAge("Jul 21, 2000")
	assert.Equal(t, "Jul 21, 2000", dob)
	assert.Equal(t, "", age)

	dob, age = splitDOBAge("")
	assert.Equal(t, "", dob)
	assert.Equal(t, "", age)
}

func TestSeasonYears(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start int
		end   int
		ok    bool
	}{
		{"25/26", 2025, 2026, true},
		{"99/00", 1999, 2000, true},
		{"89/90", 2089, 2090, true},
		{"90/91", 1990, 1991, true},
		{"2024/25", 2024, 2025, true},
		{"2025", 2025, 2025, true},
		{"garbage", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := seasonYears(tt.name)
		assert.Equal(t, tt.ok, ok, "season %q", tt.name)
		if tt.ok {
			assert.Equal(t, tt.start, start, "season %q start", tt.name)
			assert.Equal(t, tt.end, end, "season %q end", tt.name)
		}
	}
}
