package dedup

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestClaim(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	key := "circle_started_7"

	// First claim inserts a row.
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO processed_events (account, "key")
		VALUES ($1, $2)
		ON CONFLICT (account, "key") DO NOTHING;
    `)).
		WithArgs(account, key).
		WillReturnResult(sqlmock.NewResult(0, 1))

	claimed, err := repo.Claim(context.Background(), account, key)
	assert.NoError(t, err)
	assert.True(t, claimed)

	// Second claim hits the conflict and affects nothing.
	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO processed_events (account, "key")
		VALUES ($1, $2)
		ON CONFLICT (account, "key") DO NOTHING;
    `)).
		WithArgs(account, key).
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err = repo.Claim(context.Background(), account, key)
	assert.NoError(t, err)
	assert.False(t, claimed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHas(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	key := "goal_completed_3"

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT EXISTS (
		    SELECT 1 FROM processed_events
		    WHERE account = $1 AND "key" = $2
		);
    `)).
		WithArgs(account, key).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.Has(context.Background(), account, key)
	assert.NoError(t, err)
	assert.True(t, has)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReset(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM processed_events
		WHERE account = $1;
    `)).
		WithArgs(account).
		WillReturnResult(sqlmock.NewResult(0, 5))

	assert.NoError(t, repo.Reset(context.Background(), account))
	assert.NoError(t, mock.ExpectationsWereMet())
}
