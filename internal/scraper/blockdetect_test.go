package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectorBlocked(t *testing.T) {
	t.Parallel()

	realPage := strings.Repeat("x", 6000) + " Transfermarkt squad table "
	smallBranded := "<html>transfermarkt " + strings.Repeat("y", 200) + "</html>"

	tests := []struct {
		name    string
		status  int
		body    string
		blocked bool
	}{
		{"plain 200 page", 200, realPage, false},
		{"403 wall", 403, "<html>Forbidden</html>", true},
		{"403 real error page keeps brand and size", 403, realPage, false},
		{"429 always blocked", 429, realPage, true},
		{"503 always blocked", 503, realPage, true},
		{"tiny unbranded body", 200, "<html></html>", true},
		{"tiny branded body passes", 200, smallBranded, false},
		{"error page with block phrase", 500, realPage + " Access Denied ", true},
		{"block phrase on 200 ignored", 200, realPage + " access denied ", false},
		{"captcha challenge", 200, realPage + " please solve this CAPTCHA ", true},
		{"captcha mention without verb", 200, realPage + " captcha ", false},
		{"recaptcha widget", 200, realPage + " www.google.com/recaptcha/api.js ", true},
		{"hcaptcha widget", 200, realPage + " hcaptcha.com/1/api.js ", true},
	}

	d := NewDetector("transfermarkt")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.blocked, d.Blocked(tt.status, []byte(tt.body)))
		})
	}
}
