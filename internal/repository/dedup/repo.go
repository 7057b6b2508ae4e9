package dedup

import (
	"context"
	"fmt"

	"github.com/wb-go/wbf/dbpg"
)

// Repository is the persistent set of consumed dedup keys.
//
// Keys have no TTL: domain events are not re-orderable, so a consumed key
// must never re-fire. The set only shrinks via an explicit Reset.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new dedup key repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Claim records the key as consumed and reports whether this call consumed
// it. The check-and-insert is a single statement, so two concurrent claims of
// the same key can never both succeed.
func (r *Repository) Claim(ctx context.Context, account, key string) (bool, error) {
	query := `
		INSERT INTO processed_events (account, "key")
		VALUES ($1, $2)
		ON CONFLICT (account, "key") DO NOTHING;
    `

	res, err := r.db.ExecContext(ctx, query, account, key)
	if err != nil {
		return false, fmt.Errorf("failed to claim dedup key: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows > 0, nil
}

// Has reports whether the key was already consumed.
func (r *Repository) Has(ctx context.Context, account, key string) (bool, error) {
	query := `
		SELECT EXISTS (
		    SELECT 1 FROM processed_events
		    WHERE account = $1 AND "key" = $2
		);
    `

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, account, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check dedup key: %w", err)
	}

	return exists, nil
}

// Add records the key as consumed without reporting whether it was new.
func (r *Repository) Add(ctx context.Context, account, key string) error {
	if _, err := r.Claim(ctx, account, key); err != nil {
		return err
	}

	return nil
}

// Reset clears every consumed key for an account. Debugging and tests only;
// normal operation never removes keys.
func (r *Repository) Reset(ctx context.Context, account string) error {
	query := `
		DELETE FROM processed_events
		WHERE account = $1;
    `

	if _, err := r.db.ExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("failed to reset dedup keys: %w", err)
	}

	return nil
}
