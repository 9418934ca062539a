// Package history records visited pages in a local sqlite database and
// suggests completions for the location bar.
package history

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// suggestion candidates are read from the most visited rows
const suggestPool = 200

// minSimilarity is the lowest fuzzy score a suggestion may have.
const minSimilarity = 0.6

// Visit is one row of the history table.
type Visit struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	VisitCount  int       `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
}

// Store is the visit history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	if err := migrateUp(path); err != nil {
		return nil, fmt.Errorf("migrating history database: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Second) }}, nil
}

func migrateUp(path string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record notes a visit to url. Repeated visits bump the count and refresh
// the title.
func (s *Store) Record(ctx context.Context, url, title string) error {
	if url == "" || strings.HasPrefix(url, "about:") {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (url, title, visit_count, last_visited)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(url) DO UPDATE SET
			visit_count = visit_count + 1,
			title = CASE WHEN excluded.title != '' THEN excluded.title ELSE visits.title END,
			last_visited = excluded.last_visited`,
		url, title, s.now())
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Recent returns up to n visits, most recent first.
func (s *Store) Recent(ctx context.Context, n int) ([]Visit, error) {
	return s.query(ctx, `
		SELECT url, title, visit_count, last_visited FROM visits
		ORDER BY last_visited DESC, id DESC LIMIT ?`, n)
}

// Clear deletes every visit.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Suggest returns the visited URL that best completes input. Prefix matches
// on the URL without its scheme win, most visited first; otherwise the
// closest host by edit distance is used if it is similar enough.
func (s *Store) Suggest(ctx context.Context, input string) (string, bool, error) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false, nil
	}
	visits, err := s.query(ctx, `
		SELECT url, title, visit_count, last_visited FROM visits
		ORDER BY visit_count DESC, last_visited DESC LIMIT ?`, suggestPool)
	if err != nil {
		return "", false, err
	}

	key := stripScheme(needle)
	for _, v := range visits {
		if strings.HasPrefix(strings.ToLower(stripScheme(v.URL)), key) {
			return v.URL, true, nil
		}
	}

	best, bestScore := "", 0.0
	for _, v := range visits {
		score := similarity(needle, strings.ToLower(hostOf(v.URL)))
		if score > bestScore {
			best, bestScore = v.URL, score
		}
	}
	if bestScore >= minSimilarity {
		return best, true, nil
	}
	return "", false, nil
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.URL, &v.Title, &v.VisitCount, &v.LastVisited); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func stripScheme(u string) string {
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	return strings.TrimPrefix(u, "www.")
}

func hostOf(u string) string {
	h := stripScheme(u)
	if i := strings.IndexAny(h, "/?#"); i >= 0 {
		h = h[:i]
	}
	return h
}

func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
