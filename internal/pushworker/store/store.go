// Package store is the push worker's private persistent state.
//
// The worker runs detached from the notifier and may outlive it; the two
// processes never share a storage context. This store holds only what
// background delivery needs: the API base URL handed over at subscribe time,
// the worker's view of each subscription, and per-account reminder state.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Subscription statuses as tracked by the worker. A registration starts as
// "registered" when the foreground hands over a token, becomes "subscribed"
// on the first confirmed send, and degrades to "stale" when the platform
// rejects the token. The platform invalidates registrations silently, so
// staleness is only ever learned from a failed send.
const (
	StatusRegistered = "registered"
	StatusSubscribed = "subscribed"
	StatusStale      = "stale"
)

// ErrUnknownSubscription reports that the worker has no record for an account.
var ErrUnknownSubscription = errors.New("unknown subscription")

// Store is a local SQLite-backed key-value and subscription store.
type Store struct {
	db *sqlx.DB
}

// ReminderState throttles re-engagement reminders for one account.
type ReminderState struct {
	Account     string    `db:"account"`
	LastShown   time.Time `db:"last_shown"`
	SnoozeUntil time.Time `db:"snooze_until"`
	Enabled     bool      `db:"enabled"`
}

// WorkerSubscription is the worker's record of one push registration.
type WorkerSubscription struct {
	Account   string    `db:"account"`
	Token     string    `db:"token"`
	Status    string    `db:"status"`
	UpdatedAt time.Time `db:"updated_at"`
}

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

			CREATE TABLE IF NOT EXISTS config (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS subscriptions (
				account TEXT PRIMARY KEY,
				token TEXT NOT NULL,
				status TEXT NOT NULL,
				updated_at DATETIME NOT NULL
			);

			CREATE TABLE IF NOT EXISTS reminder_state (
				account TEXT PRIMARY KEY,
				last_shown DATETIME NOT NULL,
				snooze_until DATETIME NOT NULL,
				enabled INTEGER NOT NULL
			);

			INSERT INTO schema_version (version) VALUES (1);
		`,
	},
}

// New opens (or creates) the worker store at dbPath, enables WAL mode, and
// runs any pending schema migrations.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// SetAPIURL persists the notifier's base URL for background sync.
func (s *Store) SetAPIURL(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO config (key, value) VALUES ('api_url', ?)", url)
	if err != nil {
		return fmt.Errorf("storing api url: %w", err)
	}

	return nil
}

// APIURL returns the stored base URL, or "" when never configured.
func (s *Store) APIURL(ctx context.Context) (string, error) {
	var url string
	err := s.db.GetContext(ctx, &url, "SELECT value FROM config WHERE key = 'api_url'")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("reading api url: %w", err)
	}

	return url, nil
}

// UpsertSubscription records the worker's view of one registration.
func (s *Store) UpsertSubscription(ctx context.Context, account, token, status string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO subscriptions (account, token, status, updated_at)
		VALUES (?, ?, ?, ?)`,
		account, token, status, time.Now())
	if err != nil {
		return fmt.Errorf("upserting subscription: %w", err)
	}

	return nil
}

// MarkStale flags a subscription whose token the platform discarded.
func (s *Store) MarkStale(ctx context.Context, account string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE subscriptions SET status = ?, updated_at = ? WHERE account = ?",
		StatusStale, time.Now(), account)
	if err != nil {
		return fmt.Errorf("marking subscription stale: %w", err)
	}

	return nil
}

// Subscription returns the worker's record for one account.
func (s *Store) Subscription(ctx context.Context, account string) (WorkerSubscription, error) {
	var sub WorkerSubscription
	err := s.db.GetContext(ctx, &sub,
		"SELECT account, token, status, updated_at FROM subscriptions WHERE account = ?",
		account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WorkerSubscription{}, ErrUnknownSubscription
		}

		return WorkerSubscription{}, fmt.Errorf("reading subscription: %w", err)
	}

	return sub, nil
}

// Delete removes the worker's record for one account.
func (s *Store) Delete(ctx context.Context, account string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE account = ?", account)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}

	return nil
}

// ActiveSubscriptions lists the registrations the worker believes are live.
// Stale registrations are excluded until the account re-subscribes.
func (s *Store) ActiveSubscriptions(ctx context.Context) ([]WorkerSubscription, error) {
	var subs []WorkerSubscription
	err := s.db.SelectContext(ctx, &subs,
		"SELECT account, token, status, updated_at FROM subscriptions WHERE status IN (?, ?) ORDER BY account",
		StatusRegistered, StatusSubscribed)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	return subs, nil
}

// ReminderState returns the reminder throttle state for an account,
// defaulting to enabled with no history.
func (s *Store) ReminderState(ctx context.Context, account string) (ReminderState, error) {
	var state ReminderState
	err := s.db.GetContext(ctx, &state,
		"SELECT account, last_shown, snooze_until, enabled FROM reminder_state WHERE account = ?",
		account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReminderState{Account: account, Enabled: true}, nil
		}

		return ReminderState{}, fmt.Errorf("reading reminder state: %w", err)
	}

	return state, nil
}

// SetReminderState persists the reminder throttle state for an account.
func (s *Store) SetReminderState(ctx context.Context, state ReminderState) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO reminder_state (account, last_shown, snooze_until, enabled)
		VALUES (?, ?, ?, ?)`,
		state.Account, state.LastShown, state.SnoozeUntil, state.Enabled)
	if err != nil {
		return fmt.Errorf("storing reminder state: %w", err)
	}

	return nil
}
