package rulestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"muffle/internal/rules"
)

// ErrLocked is returned when another process holds the store lock.
var ErrLocked = errors.New("rule store is locked by another process")

// Store manages custom rule persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the rule database, acquires the store
// lock, and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure rule store directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire rule store lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Put stores or replaces the rule list for a host.
func (s *Store) Put(ctx context.Context, host string, list []*rules.Rule) error {
	if host == "" {
		return errors.New("host must not be empty")
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO custom_rules (host, rules, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(host) DO UPDATE SET rules = excluded.rules, updated_at = excluded.updated_at`,
		host,
		string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store rules for %s: %w", host, err)
	}
	return nil
}

// Get returns the custom rule list for a host, or nil when absent.
func (s *Store) Get(ctx context.Context, host string) ([]*rules.Rule, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT rules FROM custom_rules WHERE host = ?`, host).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load rules for %s: %w", host, err)
	}
	return rules.DecodeRules([]byte(payload))
}

// Delete removes the custom rules for a host.
func (s *Store) Delete(ctx context.Context, host string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM custom_rules WHERE host = ?`, host); err != nil {
		return fmt.Errorf("delete rules for %s: %w", host, err)
	}
	return nil
}

// All returns every stored host's rules as a table for registry overlay.
func (s *Store) All(ctx context.Context) (rules.Table, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT host, rules FROM custom_rules ORDER BY host`)
	if err != nil {
		return nil, fmt.Errorf("list custom rules: %w", err)
	}
	defer rows.Close()

	table := make(rules.Table)
	for rows.Next() {
		var host, payload string
		if err := rows.Scan(&host, &payload); err != nil {
			return nil, fmt.Errorf("scan custom rules row: %w", err)
		}
		list, err := rules.DecodeRules([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("host %s: %w", host, err)
		}
		table[host] = list
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom rules: %w", err)
	}
	return table, nil
}
