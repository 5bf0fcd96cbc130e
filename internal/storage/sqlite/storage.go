package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/forceteam/internal/model"
	"github.com/mcoot/forceteam/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS enforcement_reports (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	kind       TEXT    NOT NULL,
	player_id  INTEGER NOT NULL DEFAULT 0,
	team       TEXT    NOT NULL DEFAULT '',
	detail     TEXT    NOT NULL DEFAULT '',
	moved      INTEGER NOT NULL DEFAULT 0,
	correct    INTEGER NOT NULL DEFAULT 0,
	removed    INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS enforcement_reports_created_at
	ON enforcement_reports (created_at DESC, id DESC);
`

// Storage is a SQLite-backed journal
type Storage struct {
	sqlDB *sql.DB
}

// Open opens a journal database at path and creates its table
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection
func (s *Storage) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ensure Storage implements the interface
var _ storage.Journal = (*Storage)(nil)

func (s *Storage) Append(ctx context.Context, r model.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.Kind == "" {
		return fmt.Errorf("report kind is required")
	}
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO enforcement_reports (
	kind,
	player_id,
	team,
	detail,
	moved,
	correct,
	removed,
	created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		string(r.Kind),
		int64(r.PlayerID),
		teamColumn(r.Team),
		r.Detail,
		r.Moved,
		r.Correct,
		r.Removed,
		r.At.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append report: %w", err)
	}
	return nil
}

func (s *Storage) List(ctx context.Context, limit int) ([]model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	kind,
	player_id,
	team,
	detail,
	moved,
	correct,
	removed,
	created_at
FROM enforcement_reports
ORDER BY created_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var (
			r         model.Report
			kind      string
			playerID  int64
			team      string
			createdAt int64
		)
		if err := rows.Scan(&kind, &playerID, &team, &r.Detail, &r.Moved, &r.Correct, &r.Removed, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.Kind = model.ReportKind(kind)
		r.PlayerID = model.PlayerID(playerID)
		if team != "" {
			r.Team = model.DecodeJoinToken(team)
		}
		r.At = time.UnixMilli(createdAt).UTC()
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

func teamColumn(t model.Team) string {
	if t == model.TeamNone {
		return ""
	}
	return t.Token()
}
