package urlbar

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewResolver("", nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"absolute https", "https://servo.org/", "https://servo.org/"},
		{"about page", "about:blank", "about:blank"},
		{"file url", "file:///tmp/index.html", "file:///tmp/index.html"},
		{"bare com domain", "example.com", "http://example.com"},
		{"bare org domain", "servo.org", "http://servo.org"},
		{"bare net domain with spaces trimmed", "  example.net ", "http://example.net"},
		{"uppercase suffix", "EXAMPLE.COM", "http://EXAMPLE.COM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFallsBackToSearch(t *testing.T) {
	r := NewResolver("", nil)

	got, err := r.Resolve("not a url with spaces")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "duckduckgo.com", u.Host)
	assert.Equal(t, "not a url with spaces", u.Query().Get("q"))
}

func TestResolveUnknownSuffixSearches(t *testing.T) {
	r := NewResolver("https://search.test/?q=%s", nil)
	got, err := r.Resolve("example.dev")
	require.NoError(t, err)
	assert.Equal(t, "https://search.test/?q=example.dev", got)

	r = NewResolver("https://search.test/?q=%s", []string{".dev"})
	got, err = r.Resolve("example.dev")
	require.NoError(t, err)
	assert.Equal(t, "http://example.dev", got)
}

func TestResolveRejects(t *testing.T) {
	_, err := NewResolver("", nil).Resolve("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Resolver{SearchURL: "https://search.test/"}.Resolve("two words")
	assert.ErrorIs(t, err, ErrUnresolvable)

	_, err = Resolver{SearchURL: "not a template %s"}.Resolve("two words")
	assert.ErrorIs(t, err, ErrUnresolvable)
}
