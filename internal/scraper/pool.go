package scraper

import (
	"math/rand"
	"net/http"
	"strings"
)

// Rotation pools. Entries are real browser fingerprints; keeping them
// current matters more than keeping them numerous, since the target
// site fingerprints stale UA strings aggressively.

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:132.0) Gecko/20100101 Firefox/132.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:131.0) Gecko/20100101 Firefox/131.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:132.0) Gecko/20100101 Firefox/132.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.1 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36 Edg/131.0.0.0",
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,de;q=0.8",
	"en-US,en;q=0.8",
	"en-GB,en-US;q=0.9,en;q=0.8",
}

// secFetchProfile groups the Sec-Fetch-* values that a browser sends
// together for a top-level navigation.
type secFetchProfile struct {
	dest, mode, site, user string
}

var secFetchProfiles = []secFetchProfile{
	{dest: "document", mode: "navigate", site: "none", user: "?1"},
	{dest: "document", mode: "navigate", site: "same-origin", user: "?1"},
	{dest: "document", mode: "navigate", site: "cross-site", user: "?1"},
}

// viewport is a browser window size used by the headless renderer.
type viewport struct {
	width, height int
}

var viewports = []viewport{
	{1920, 1080},
	{1366, 768},
	{1536, 864},
	{1440, 900},
}

func randomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

func randomViewport() viewport {
	return viewports[rand.Intn(len(viewports))]
}

// randomHeaders builds the header set for a session using the given
// user agent. Chromium client hints are only attached for Chrome UAs;
// sending them from a Firefox or Safari fingerprint is itself a tell.
func randomHeaders(ua string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", ua)
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))])
	h.Set("Accept-Encoding", "gzip, deflate, br")
	h.Set("DNT", "1")
	h.Set("Connection", "keep-alive")
	h.Set("Upgrade-Insecure-Requests", "1")

	p := secFetchProfiles[rand.Intn(len(secFetchProfiles))]
	h.Set("Sec-Fetch-Dest", p.dest)
	h.Set("Sec-Fetch-Mode", p.mode)
	h.Set("Sec-Fetch-Site", p.site)
	h.Set("Sec-Fetch-User", p.user)

	if strings.Contains(ua, "Chrome/") && !strings.Contains(ua, "Edg/") {
		h.Set("sec-ch-ua", `"Google Chrome";v="131", "Chromium";v="131", "Not_A Brand";v="24"`)
		h.Set("sec-ch-ua-mobile", "?0")
		switch {
		case strings.Contains(ua, "Macintosh"):
			h.Set("sec-ch-ua-platform", `"macOS"`)
		case strings.Contains(ua, "X11; Linux"):
			h.Set("sec-ch-ua-platform", `"Linux"`)
		default:
			h.Set("sec-ch-ua-platform", `"Windows"`)
		}
	}
	return h
}
