package preferences

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/circlepot/notifier/internal/model"
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

func TestGet_AbsentRowDefaults(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT in_app_enabled, push_enabled, categories
		FROM notification_preferences
		WHERE account = $1;
    `)).
		WithArgs("0xabc").
		WillReturnError(sql.ErrNoRows)

	prefs, err := repo.Get(context.Background(), "0xabc")
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), prefs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CorruptCategoriesDefaults(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"in_app_enabled", "push_enabled", "categories"}).
		AddRow(false, false, []byte("{broken"))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT in_app_enabled, push_enabled, categories
		FROM notification_preferences
		WHERE account = $1;
    `)).
		WithArgs("0xabc").
		WillReturnRows(rows)

	prefs, err := repo.Get(context.Background(), "0xabc")
	assert.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), prefs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MergesAndUpserts(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT in_app_enabled, push_enabled, categories
		FROM notification_preferences
		WHERE account = $1;
    `)).
		WithArgs("0xabc").
		WillReturnError(sql.ErrNoRows)

	mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO notification_preferences (account, in_app_enabled, push_enabled, categories, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account) DO UPDATE
		SET in_app_enabled = EXCLUDED.in_app_enabled,
		    push_enabled = EXCLUDED.push_enabled,
		    categories = EXCLUDED.categories,
		    updated_at = EXCLUDED.updated_at;
    `)).
		WithArgs("0xabc", true, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pushOff := false
	merged, err := repo.Update(context.Background(), "0xabc", model.PreferencesPatch{
		PushEnabled: &pushOff,
		Categories:  map[string]bool{model.TypeCircleStarted: false},
	})
	assert.NoError(t, err)
	assert.True(t, merged.InAppEnabled)
	assert.False(t, merged.PushEnabled)
	assert.False(t, merged.Categories[model.TypeCircleStarted])
	// Categories absent from the patch keep their stored value.
	assert.True(t, merged.Categories[model.TypeGoalCompleted])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAccounts(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"account"}).
		AddRow("0xabc").
		AddRow("0xdef")

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT account
		FROM notification_preferences
		ORDER BY account;
    `)).
		WillReturnRows(rows)

	accounts, err := repo.ListAccounts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"0xabc", "0xdef"}, accounts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
