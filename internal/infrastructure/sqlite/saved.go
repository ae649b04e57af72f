package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/shadematch/backend/internal/domain"
)

// timeFormat is fixed-width so created_at sorts lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SavedStore implements domain.SavedFoundationRepository using SQLite
type SavedStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy io.Reader
}

// NewSavedStore opens or creates a SQLite database at dbPath
func NewSavedStore(dbPath string) (*SavedStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if dbPath == ":memory:" {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &SavedStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SavedStore) newID(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
}

func (s *SavedStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saved_foundations (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		brand      TEXT NOT NULL,
		shade_name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_user_shade ON saved_foundations(user_id, brand, shade_name);
	CREATE INDEX IF NOT EXISTS idx_saved_user_created ON saved_foundations(user_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save records a bookmark. An existing bookmark for the same shade is
// returned unchanged.
func (s *SavedStore) Save(ctx context.Context, userID, brand, shadeName string) (*domain.SavedFoundation, error) {
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_foundations (id, user_id, brand, shade_name, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, brand, shade_name) DO NOTHING`,
		s.newID(now), userID, brand, shadeName, now.Format(timeFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("insert saved foundation: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, brand, shade_name, created_at FROM saved_foundations
		 WHERE user_id = ? AND brand = ? AND shade_name = ?`,
		userID, brand, shadeName,
	)
	saved, err := scanSaved(row)
	if err != nil {
		return nil, fmt.Errorf("read saved foundation: %w", err)
	}
	return saved, nil
}

// Remove deletes a bookmark, returning domain.ErrNotFound if absent
func (s *SavedStore) Remove(ctx context.Context, userID, brand, shadeName string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM saved_foundations WHERE user_id = ? AND brand = ? AND shade_name = ?`,
		userID, brand, shadeName,
	)
	if err != nil {
		return fmt.Errorf("delete saved foundation: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete saved foundation: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns the user's bookmarks, newest first
func (s *SavedStore) List(ctx context.Context, userID string) ([]domain.SavedFoundation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, brand, shade_name, created_at FROM saved_foundations
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list saved foundations: %w", err)
	}
	defer rows.Close()

	saved := []domain.SavedFoundation{}
	for rows.Next() {
		item, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved foundation: %w", err)
		}
		saved = append(saved, *item)
	}
	return saved, rows.Err()
}

// Close closes the database
func (s *SavedStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSaved(row scanner) (*domain.SavedFoundation, error) {
	var (
		saved     domain.SavedFoundation
		createdAt string
	)
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Brand, &saved.ShadeName, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	saved.CreatedAt = t
	return &saved, nil
}
