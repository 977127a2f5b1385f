// Package telemetry provides a SQLite-backed log of game sessions and
// events, standing in for the host's dbLogin/dbEvent/dbSend service.
package telemetry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"beads/internal/telemetry/migrations"
)

// Store persists telemetry in SQLite.
type Store struct {
	sqlDB *sql.DB

	mu       sync.Mutex
	sessions map[string]string // team -> current session id
}

// Record is one stored event.
type Record struct {
	ID        int64
	Team      string
	SessionID string
	Name      string
	Fields    []any
	CreatedAt time.Time
	SentAt    time.Time // zero while pending
	Discarded bool
}

// Open opens a SQLite telemetry store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, sessions: make(map[string]string)}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Login starts a session for user under team and returns the user.
func (s *Store) Login(ctx context.Context, app, team, user string) (string, error) {
	team = strings.TrimSpace(team)
	if team == "" {
		return "", fmt.Errorf("team is required")
	}
	user = strings.TrimSpace(user)
	if user == "" {
		user = "anonymous"
	}
	id := uuid.NewString()
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO sessions (id, app, team, user_name, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, app, team, user, time.Now().UTC().UnixMilli(),
	); err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	s.mu.Lock()
	s.sessions[team] = id
	s.mu.Unlock()
	return user, nil
}

// Event appends an event for team. Fields are stored as a JSON array.
func (s *Store) Event(ctx context.Context, team, name string, fields ...any) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("event name is required")
	}
	if fields == nil {
		fields = []any{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	s.mu.Lock()
	session := s.sessions[team]
	s.mu.Unlock()
	if _, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO events (team, session_id, name, fields, created_at) VALUES (?, ?, ?, ?, ?)`,
		team, session, name, string(encoded), time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Send stamps team's unsent events as sent and returns how many were
// affected. With discard the rows are flagged as having no local copy
// kept for resend; they are never deleted.
func (s *Store) Send(ctx context.Context, team string, discard bool) (int, error) {
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE events SET sent_at = ?, discarded = ? WHERE team = ? AND sent_at IS NULL`,
		time.Now().UTC().UnixMilli(), discard, team)
	if err != nil {
		return 0, fmt.Errorf("send events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// Pending returns team's unsent events, oldest first.
func (s *Store) Pending(ctx context.Context, team string) ([]Record, error) {
	return s.events(ctx, `WHERE team = ? AND sent_at IS NULL`, team)
}

// Sent returns team's sent events, oldest first.
func (s *Store) Sent(ctx context.Context, team string) ([]Record, error) {
	return s.events(ctx, `WHERE team = ? AND sent_at IS NOT NULL`, team)
}

func (s *Store) events(ctx context.Context, where string, args ...any) ([]Record, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, team, session_id, name, fields, created_at, sent_at, discarded
		   FROM events `+where+`
		  ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec     Record
			fields  string
			created int64
			sent    sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Team, &rec.SessionID, &rec.Name, &fields, &created, &sent, &rec.Discarded); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
			return nil, fmt.Errorf("decode fields: %w", err)
		}
		rec.CreatedAt = time.UnixMilli(created).UTC()
		if sent.Valid {
			rec.SentAt = time.UnixMilli(sent.Int64).UTC()
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Sessions counts the sessions recorded for team.
func (s *Store) Sessions(ctx context.Context, team string) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE team = ?`, team).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
