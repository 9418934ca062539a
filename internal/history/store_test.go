package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Record(ctx, "https://servo.org/", "Servo"))
	require.NoError(t, s.Record(ctx, "https://example.com/", "Example"))
	require.NoError(t, s.Record(ctx, "https://servo.org/", ""))

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, "https://servo.org/", visits[0].URL)
	assert.Equal(t, "Servo", visits[0].Title, "blank titles keep the old one")
	assert.Equal(t, 2, visits[0].VisitCount)
	assert.Equal(t, "https://example.com/", visits[1].URL)
}

func TestRecordSkipsAboutPages(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Record(ctx, "about:blank", ""))
	require.NoError(t, s.Record(ctx, "", ""))

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Record(ctx, "https://servo.org/", "Servo"))
	require.NoError(t, s.Clear(ctx))

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, visits)
}

func TestSuggest(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Record(ctx, "https://www.github.com/servo", "GitHub"))
	require.NoError(t, s.Record(ctx, "https://servo.org/", "Servo"))
	require.NoError(t, s.Record(ctx, "https://servo.org/", "Servo"))

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"serv", "https://servo.org/", true},
		{"github.com/s", "https://www.github.com/servo", true},
		{"https://servo", "https://servo.org/", true},
		{"servo.orh", "https://servo.org/", true},
		{"zzzzzz", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok, err := s.Suggest(ctx, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, "https://servo.org/", "Servo"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	visits, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, visits, 1)
}
