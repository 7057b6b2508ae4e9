package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wb-go/wbf/dbpg"

	"github.com/circlepot/notifier/internal/model"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

// Repository persists push subscriptions. Each account holds at most one:
// subscribing again replaces the previous token.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new subscription repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Save creates or replaces the subscription for an account.
func (r *Repository) Save(ctx context.Context, account, token string) error {
	query := `
		INSERT INTO push_subscriptions (account, token, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account) DO UPDATE
		SET token = EXCLUDED.token,
		    created_at = EXCLUDED.created_at;
    `

	if _, err := r.db.ExecContext(ctx, query, account, token, time.Now()); err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	return nil
}

// Get returns the subscription for an account.
func (r *Repository) Get(ctx context.Context, account string) (model.PushSubscription, error) {
	query := `
		SELECT id, account, token, created_at
		FROM push_subscriptions
		WHERE account = $1;
    `

	var sub model.PushSubscription
	err := r.db.QueryRowContext(ctx, query, account).Scan(&sub.ID, &sub.Account, &sub.Token, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PushSubscription{}, ErrSubscriptionNotFound
		}

		return model.PushSubscription{}, fmt.Errorf("failed to get subscription: %w", err)
	}

	return sub, nil
}

// Delete removes the subscription for an account.
func (r *Repository) Delete(ctx context.Context, account string) error {
	query := `
		DELETE FROM push_subscriptions
		WHERE account = $1;
    `

	res, err := r.db.ExecContext(ctx, query, account)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrSubscriptionNotFound
	}

	return nil
}
