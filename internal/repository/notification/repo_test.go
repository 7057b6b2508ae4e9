package notification

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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

func TestAppend(t *testing.T) {
	repo, mock := setupMockDB(t)

	notificationID := uuid.New()
	n := model.Notification{
		Account:   "0xabc",
		Type:      model.TypeCircleStarted,
		Title:     "Circle Started",
		Message:   `"Rent Fund" has started! Your first contribution is due.`,
		Priority:  model.PriorityHigh,
		CreatedAt: time.Now(),
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO notifications (
		    account, type, title, message, priority, action, data, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;
    `)).
		WithArgs(n.Account, n.Type, n.Title, n.Message, n.Priority, nil, nil, n.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(notificationID))

	id, err := repo.Append(context.Background(), n)
	assert.NoError(t, err)
	assert.Equal(t, notificationID, id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	action, _ := json.Marshal(model.Action{Label: "View Circle", Route: "/circles"})

	rows := sqlmock.NewRows([]string{
		"id", "account", "type", "title", "message", "priority", "read", "action", "data", "created_at",
	}).
		AddRow(uuid.New(), account, model.TypeCircleStarted, "Circle Started", "msg1", "high", false, action, nil, time.Now()).
		AddRow(uuid.New(), account, model.TypeGoalCompleted, "Goal Completed", "msg2", "high", true, nil, nil, time.Now().Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, account, type, title, message, priority, read, action, data, created_at
		FROM notifications
		WHERE account = $1
		ORDER BY created_at DESC;
    `)).
		WithArgs(account).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), account)
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "/circles", list[0].Action.Route)
	assert.Nil(t, list[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_CorruptActionFallsBack(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	rows := sqlmock.NewRows([]string{
		"id", "account", "type", "title", "message", "priority", "read", "action", "data", "created_at",
	}).
		AddRow(uuid.New(), account, model.TypeGoalCompleted, "Goal Completed", "msg", "high", false, []byte("{not json"), nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, account, type, title, message, priority, read, action, data, created_at
		FROM notifications
		WHERE account = $1
		ORDER BY created_at DESC;
    `)).
		WithArgs(account).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), account)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	// Unreadable persisted action degrades to the type default.
	assert.NotNil(t, list[0].Action)
	assert.Equal(t, "/goals", list[0].Action.Route)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRead(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET read = TRUE
		WHERE account = $1 AND id = $2;
    `)).
		WithArgs(account, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkRead(context.Background(), account, id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET read = TRUE
		WHERE account = $1 AND id = $2;
    `)).
		WithArgs(account, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.MarkRead(context.Background(), account, id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemove(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM notifications
		WHERE account = $1 AND id = $2;
    `)).
		WithArgs(account, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Remove(context.Background(), account, id)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnreadCount(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT COUNT(*)
		FROM notifications
		WHERE account = $1 AND read = FALSE;
    `)).
		WithArgs(account).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.UnreadCount(context.Background(), account)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPending(t *testing.T) {
	repo, mock := setupMockDB(t)

	account := "0xabc"
	rows := sqlmock.NewRows([]string{
		"id", "account", "type", "title", "message", "priority", "read", "action", "data", "created_at",
	}).
		AddRow(uuid.New(), account, model.TypePayoutReceived, "Payout Received", "msg", "high", false, nil, nil, time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, account, type, title, message, priority, read, action, data, created_at
		FROM notifications
		WHERE account = $1 AND read = FALSE AND priority = 'high'
		ORDER BY created_at ASC
		LIMIT $2;
    `)).
		WithArgs(account, 10).
		WillReturnRows(rows)

	list, err := repo.Pending(context.Background(), account, 10)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateActions_IsIdempotent(t *testing.T) {
	repo, mock := setupMockDB(t)

	// One UPDATE per known type, twice over. Rows that already carry an
	// action are excluded by the WHERE clause, so the second run matches
	// nothing and changes nothing.
	for run := 0; run < 2; run++ {
		for i := 0; i < 31; i++ {
			mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET action = $1
		WHERE type = $2 AND action IS NULL;
    `)).
				WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	assert.NoError(t, repo.MigrateActions(context.Background()))
	assert.NoError(t, repo.MigrateActions(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
