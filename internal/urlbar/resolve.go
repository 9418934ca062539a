// Package urlbar turns what the user typed into the location bar into a URL
// the engine can load.
package urlbar

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultSearchURL is used when no search template is configured.
const DefaultSearchURL = "https://duckduckgo.com/html/?q=%s"

// DefaultBareDomainSuffixes are the endings that make input without a scheme
// look like a host name.
var DefaultBareDomainSuffixes = []string{".com", ".org", ".net"}

var (
	// ErrEmptyInput is returned for blank input.
	ErrEmptyInput = errors.New("empty location")
	// ErrUnresolvable is returned when no fallback yields a valid URL.
	ErrUnresolvable = errors.New("cannot resolve location")
)

// Resolver applies the fallback chain: absolute URL, then bare domain, then
// web search.
type Resolver struct {
	SearchURL          string
	BareDomainSuffixes []string
}

// NewResolver returns a resolver with the defaults filled in.
func NewResolver(searchURL string, suffixes []string) Resolver {
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	if len(suffixes) == 0 {
		suffixes = DefaultBareDomainSuffixes
	}
	return Resolver{SearchURL: searchURL, BareDomainSuffixes: suffixes}
}

// Resolve returns the URL to load for input.
func (r Resolver) Resolve(input string) (string, error) {
	request := strings.TrimSpace(input)
	if request == "" {
		return "", ErrEmptyInput
	}

	if u, ok := parseAbsolute(request); ok {
		return u, nil
	}

	if r.looksLikeDomain(request) {
		if u, ok := parseAbsolute("http://" + request); ok {
			return u, nil
		}
	}

	template := r.SearchURL
	if template == "" {
		template = DefaultSearchURL
	}
	if !strings.Contains(template, "%s") {
		return "", fmt.Errorf("search template %q has no %%s: %w", template, ErrUnresolvable)
	}
	search := strings.Replace(template, "%s", url.QueryEscape(request), 1)
	if u, ok := parseAbsolute(search); ok {
		return u, nil
	}
	return "", fmt.Errorf("%q: %w", request, ErrUnresolvable)
}

func (r Resolver) looksLikeDomain(s string) bool {
	if strings.ContainsAny(s, " \t") {
		return false
	}
	lower := strings.ToLower(s)
	for _, suffix := range r.BareDomainSuffixes {
		if suffix != "" && strings.HasSuffix(lower, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// parseAbsolute accepts s when it parses with a scheme and something after
// it: a host, an opaque part (about:blank, mailto:) or a path (file:///x).
func parseAbsolute(s string) (string, bool) {
	if strings.ContainsAny(s, " \t\n") {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return "", false
	}
	if u.Host == "" && u.Opaque == "" && u.Path == "" {
		return "", false
	}
	return u.String(), true
}
