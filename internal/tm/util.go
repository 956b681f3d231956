package tm

import (
	"regexp"
	"strings"
)

var (
	// Entity permalinks follow /slug/category/type/ID, with the ID
	// numeric for players and clubs but alphanumeric for competitions
	// (GB1, FIWC). An optional season suffix may follow.
	permalinkPattern = regexp.MustCompile(`^/?([\w-]+)/([\w-]+)/([\w-]+)/([\w-]+)`)
	seasonidPattern  = regexp.MustCompile(`saison_id[/=](\d{4})`)
	clubCrestID      = regexp.MustCompile(`/wappen/[^/]+/(\d+)\.`)

	// "Jan 15, 1995 (29)" → date of birth and age.
	dobAgePattern = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)
)

// idFromURL extracts the entity ID from a permalink: the fourth path
// segment, after slug, category and type. Returns "" when the URL does
// not look like a permalink.
func idFromURL(url string) string {
	if url == "" {
		return ""
	}
	url = strings.TrimPrefix(url, "https://www.transfermarkt.com")
	m := permalinkPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	if m[4] == "saison_id" {
		return ""
	}
	return m[4]
}

// seasonIDFromURL extracts the saison_id from either URL form, path
// segment or query parameter.
func seasonIDFromURL(url string) string {
	m := seasonidPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// clubIDFromCrest pulls the club ID out of a crest image URL.
func clubIDFromCrest(src string) string {
	m := clubCrestID.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}

// splitDOBAge splits the combined "date (age)" cell. Either part may
// come back empty.
func splitDOBAge(s string) (dob, age string) {
	m := dobAgePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(m[1]), m[2]
}
