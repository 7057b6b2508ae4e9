package preferences

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
)

// Repository persists per-account notification preferences.
//
// Absent rows resolve to the documented defaults, and corrupted persisted
// JSON is treated as default state rather than surfacing a parse error:
// availability over alerting.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new preferences repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Get loads the preferences for an account, defaulting when absent.
func (r *Repository) Get(ctx context.Context, account string) (model.Preferences, error) {
	query := `
		SELECT in_app_enabled, push_enabled, categories
		FROM notification_preferences
		WHERE account = $1;
    `

	var (
		prefs      model.Preferences
		categories []byte
	)

	err := r.db.QueryRowContext(ctx, query, account).Scan(&prefs.InAppEnabled, &prefs.PushEnabled, &categories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DefaultPreferences(), nil
		}

		return model.Preferences{}, fmt.Errorf("failed to get preferences: %w", err)
	}

	if err := json.Unmarshal(categories, &prefs.Categories); err != nil {
		zlog.Logger.Warn().Err(err).Str("account", account).Msg("corrupt preference categories, using defaults")
		return model.DefaultPreferences(), nil
	}

	return prefs, nil
}

// Update merges a partial patch into the stored preferences and persists the
// result synchronously. Merge semantics: categories absent from the patch
// keep their stored value.
func (r *Repository) Update(ctx context.Context, account string, patch model.PreferencesPatch) (model.Preferences, error) {
	current, err := r.Get(ctx, account)
	if err != nil {
		return model.Preferences{}, err
	}

	merged := current.Merge(patch)

	categories, err := json.Marshal(merged.Categories)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("failed to marshal categories: %w", err)
	}

	query := `
		INSERT INTO notification_preferences (account, in_app_enabled, push_enabled, categories, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account) DO UPDATE
		SET in_app_enabled = EXCLUDED.in_app_enabled,
		    push_enabled = EXCLUDED.push_enabled,
		    categories = EXCLUDED.categories,
		    updated_at = EXCLUDED.updated_at;
    `

	if _, err := r.db.ExecContext(ctx, query, account, merged.InAppEnabled, merged.PushEnabled, categories, time.Now()); err != nil {
		return model.Preferences{}, fmt.Errorf("failed to update preferences: %w", err)
	}

	return merged, nil
}

// ListAccounts returns every account with stored preferences. These are the
// accounts the poller tracks.
func (r *Repository) ListAccounts(ctx context.Context) ([]string, error) {
	query := `
		SELECT account
		FROM notification_preferences
		ORDER BY account;
    `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var account string
		if err := rows.Scan(&account); err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}
