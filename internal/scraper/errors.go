package scraper

import (
	"errors"
	"fmt"
)

// Kind classifies a scraping failure so that callers can map it to an
// HTTP status or a retry decision without string matching.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindTimeout          Kind = "timeout"
	KindConnection       Kind = "connection_error"
	KindTooManyRedirects Kind = "too_many_redirects"
	KindBlocked          Kind = "blocked"
	KindDataIntegrity    Kind = "data_integrity"
	KindParse            Kind = "parse_error"
)

// Error is the single error type produced by the scraping layer. It
// carries the failure kind, the URL that was being fetched and, when
// the upstream site answered at all, the HTTP status it returned.
type Error struct {
	Kind   Kind
	URL    string
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.URL)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a typed scraping error.
func NewError(kind Kind, url, msg string) *Error {
	return &Error{Kind: kind, URL: url, Msg: msg}
}

// WrapError attaches a kind and URL to an underlying transport error.
func WrapError(kind Kind, url string, err error) *Error {
	return &Error{Kind: kind, URL: url, Err: err}
}

// BlockedError marks a response the block detector rejected. Blocked
// responses behave like a 403 regardless of the status the site sent.
func BlockedError(url string, status int) *Error {
	return &Error{
		Kind:   KindBlocked,
		URL:    url,
		Status: status,
		Msg:    "request blocked by target site",
	}
}

// NotFoundError reports that a page parsed fine but the entity the
// caller asked for does not exist on it.
func NotFoundError(url, msg string) *Error {
	return &Error{Kind: KindNotFound, URL: url, Status: 404, Msg: msg}
}

// DataIntegrityError reports extracted lists that cannot be assembled
// into coherent records.
func DataIntegrityError(url, msg string) *Error {
	return &Error{Kind: KindDataIntegrity, URL: url, Msg: msg}
}

// KindOf returns the failure kind of err, or "" when err is not a
// scraping error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
