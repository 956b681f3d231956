package scraper

import "strings"

// Block phrases checked against error-status response bodies.
var blockPhrases = []string{
	"access denied",
	"you have been blocked",
	"your access has been blocked",
	"blocked by our security",
	"rate limit exceeded",
	"too many requests",
}

// Detector decides whether a response is a disguised block rather than
// real content. Anti-bot vendors serve blocks with misleading statuses
// (sometimes even 200), so the decision combines status, body size and
// body content.
type Detector struct {
	brand       string
	minBodySize int
	realPageMin int
}

// NewDetector builds a detector for the target site. brand is a string
// present on every genuine page, lowercase.
func NewDetector(brand string) *Detector {
	return &Detector{
		brand:       strings.ToLower(brand),
		minBodySize: 1000,
		realPageMin: 5000,
	}
}

// Blocked reports whether the response should be treated as a block.
// Rules are checked in order; the first match decides.
func (d *Detector) Blocked(status int, body []byte) bool {
	lower := strings.ToLower(string(body))

	switch status {
	case 403:
		// A large page that still carries the site brand is a real
		// error page, not an anti-bot wall.
		if len(body) > d.realPageMin && strings.Contains(lower, d.brand) {
			break
		}
		return true
	case 429, 503:
		return true
	}

	if len(body) < d.minBodySize && !strings.Contains(lower, d.brand) {
		return true
	}

	if status >= 400 {
		for _, phrase := range blockPhrases {
			if strings.Contains(lower, phrase) {
				return true
			}
		}
	}

	if strings.Contains(lower, "captcha") &&
		(strings.Contains(lower, "solve") || strings.Contains(lower, "verify")) {
		return true
	}
	if strings.Contains(lower, "recaptcha") || strings.Contains(lower, "hcaptcha") {
		return true
	}

	return false
}
