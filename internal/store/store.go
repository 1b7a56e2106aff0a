// Package store persists privacy-conscious visitor and view analytics in sqlite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Visit is one tracked page view. The IP is hashed before it reaches the store.
type Visit struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
}

// ViewEvent records one change of a console's active view.
type ViewEvent struct {
	SessionID string
	From      string
	To        string
	Timestamp time.Time
}

// ViewStat counts how often a view was opened.
type ViewStat struct {
	View        string `json:"view"`
	Activations int64  `json:"activations"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TotalActivations int64      `json:"total_activations"`
	TopViews         []ViewStat `json:"top_views"`
	RecentVisitors   []Visit    `json:"recent_visitors"`
}

// Store wraps the analytics database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return err
	}
	// m.Close would also close db, so only the source is released.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordVisit inserts a visit.
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp, country)
		VALUES (?, ?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Timestamp.UTC(), v.Country)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// RecordViewEvent inserts a view transition.
func (s *Store) RecordViewEvent(ctx context.Context, e ViewEvent) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO view_events (session_id, from_view, to_view, timestamp)
		VALUES (?, ?, ?, ?)
	`, e.SessionID, e.From, e.To, e.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert view event: %w", err)
	}
	return nil
}

// Stats summarizes visitors and view activations as of at.
func (s *Store) Stats(ctx context.Context, at time.Time) (*Stats, error) {
	at = at.UTC()
	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	stats := &Stats{}

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{dayStart}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{at.Add(-7 * 24 * time.Hour)}},
		{&stats.TotalActivations, `SELECT COUNT(*) FROM view_events WHERE to_view <> ''`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats count: %w", err)
		}
	}

	top, err := s.TopViews(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopViews = top

	recent, err := s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisitors = recent

	return stats, nil
}

// TopViews returns the most opened views, most popular first.
func (s *Store) TopViews(ctx context.Context, limit int) ([]ViewStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT to_view, COUNT(*) AS activations
		FROM view_events
		WHERE to_view <> ''
		GROUP BY to_view
		ORDER BY activations DESC, to_view ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("top views: %w", err)
	}
	defer rows.Close()

	var out []ViewStat
	for rows.Next() {
		var v ViewStat
		if err := rows.Scan(&v.View, &v.Activations); err != nil {
			return nil, fmt.Errorf("scan view stat: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RecentVisitors returns the latest visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp, COALESCE(country, '')
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp, &v.Country); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Cleanup deletes visits and view events older than cutoff.
func (s *Store) Cleanup(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"visitors", "view_events"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff.UTC())
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

// now returns UTC time truncated to seconds.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
