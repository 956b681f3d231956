// Package extract turns raw HTML into field values via XPath. It is
// deliberately tolerant: a selector that matches nothing yields an
// empty result, never an error, so callers decide what absence means.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Document wraps a parsed HTML tree together with the URL it came
// from, so extraction errors can say where they happened.
type Document struct {
	root *html.Node
	url  string
}

// Parse builds a Document from raw HTML.
func Parse(rawHTML, url string) (*Document, error) {
	root, err := htmlquery.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return &Document{root: root, url: url}, nil
}

// FromNode wraps an already-parsed subtree, for row-relative queries.
func FromNode(node *html.Node, url string) *Document {
	return &Document{root: node, url: url}
}

// URL returns the address the document was fetched from.
func (d *Document) URL() string { return d.url }

// Root exposes the underlying tree for DOM-level inspection.
func (d *Document) Root() *html.Node { return d.root }

// Nodes returns the nodes matching selector, document order.
func (d *Document) Nodes(selector string) []*html.Node {
	nodes, err := htmlquery.QueryAll(d.root, selector)
	if err != nil {
		return nil
	}
	return nodes
}

// Has reports whether selector matches anything.
func (d *Document) Has(selector string) bool {
	return len(d.Nodes(selector)) > 0
}

// List extracts the normalized text of every match. When removeEmpty
// is set, matches that normalize to "" are dropped; otherwise they are
// kept so positions stay aligned with sibling selectors.
func (d *Document) List(selector string, removeEmpty bool) []string {
	nodes := d.Nodes(selector)
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		text := Clean(htmlquery.InnerText(n))
		if removeEmpty && text == "" {
			continue
		}
		out = append(out, text)
	}
	return out
}

// TextOptions shape how Text picks and joins matches.
type TextOptions struct {
	// Pos selects the 1-based nth match. Zero means all matches.
	Pos int
	// IndexFrom / IndexTo slice the match list (0-based, half-open).
	// IndexTo == 0 means to the end.
	IndexFrom int
	IndexTo   int
	// JoinWith joins multiple matches. Default is ", ".
	JoinWith string
}

// Text extracts a single string from the matches of selector. It never
// fails: no match yields "".
func (d *Document) Text(selector string, opts TextOptions) string {
	values := d.List(selector, true)
	if len(values) == 0 {
		return ""
	}
	if opts.Pos > 0 {
		if opts.Pos > len(values) {
			return ""
		}
		return values[opts.Pos-1]
	}
	from, to := opts.IndexFrom, opts.IndexTo
	if to == 0 || to > len(values) {
		to = len(values)
	}
	if from < 0 || from >= to {
		return ""
	}
	values = values[from:to]
	sep := opts.JoinWith
	if sep == "" {
		sep = ", "
	}
	return strings.Join(values, sep)
}

// nbsp and friends show up in scraped text constantly.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Clean normalizes scraped text: non-breaking spaces become plain
// spaces, runs of whitespace collapse, edges are trimmed.
func Clean(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LastPageNumber reads the pagination widget and returns the highest
// page number it links to, or 1 when there is no pagination. base is
// the XPath prefix of the pagination container.
func (d *Document) LastPageNumber(base string) int {
	suffixes := []string{
		"//li[contains(@class, 'list-item--icon-last-page')]//@href",
		"//li[contains(@class, 'list-item--active')]//@href",
	}
	for _, suffix := range suffixes {
		href := d.Text(base+suffix, TextOptions{Pos: 1})
		if href == "" {
			continue
		}
		if n := trailingNumber(href); n > 0 {
			return n
		}
	}
	return 1
}

// trailingNumber pulls the page number off the end of a pagination
// href, which comes as either ?page=7 or /page/7.
func trailingNumber(href string) int {
	tail := href
	if i := strings.LastIndex(tail, "="); i >= 0 {
		tail = tail[i+1:]
	}
	if i := strings.LastIndex(tail, "/"); i >= 0 {
		tail = tail[i+1:]
	}
	n, err := strconv.Atoi(tail)
	if err != nil {
		return 0
	}
	return n
}
