package pushworker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circlepot/notifier/internal/pushworker/store"
)

type memSyncStore struct {
	apiURL    string
	subs      []store.WorkerSubscription
	stale     []string
	reminders map[string]store.ReminderState
}

func newMemSyncStore() *memSyncStore {
	return &memSyncStore{reminders: make(map[string]store.ReminderState)}
}

func (m *memSyncStore) APIURL(_ context.Context) (string, error) {
	return m.apiURL, nil
}

func (m *memSyncStore) ActiveSubscriptions(_ context.Context) ([]store.WorkerSubscription, error) {
	return m.subs, nil
}

func (m *memSyncStore) MarkStale(_ context.Context, account string) error {
	m.stale = append(m.stale, account)
	return nil
}

func (m *memSyncStore) ReminderState(_ context.Context, account string) (store.ReminderState, error) {
	if state, ok := m.reminders[account]; ok {
		return state, nil
	}
	return store.ReminderState{Account: account, Enabled: true}, nil
}

func (m *memSyncStore) SetReminderState(_ context.Context, state store.ReminderState) error {
	m.reminders[state.Account] = state
	return nil
}

func setupSyncer(st *memSyncStore, sender *fakeSender) *Syncer {
	s := NewSyncer(st, sender, time.Minute, 5*time.Second)
	s.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestSyncOnce_DisplaysPending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, checkPath, r.URL.Path)
		assert.Equal(t, "0xabc", r.URL.Query().Get("account"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"type":"payout_received","title":"Payout Received","message":"You received $2.50.","priority":"high","action":{"label":"View History","route":"/transactions"}}
		]}`))
	}))
	defer srv.Close()

	st := newMemSyncStore()
	st.apiURL = srv.URL
	st.subs = []store.WorkerSubscription{{Account: "0xabc", Token: "tok-1", Status: store.StatusSubscribed}}

	sender := &fakeSender{}
	s := setupSyncer(st, sender)

	s.syncOnce(context.Background())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Payout Received", sender.sent[0].Title)
	assert.Equal(t, "payout_received", sender.sent[0].Tag)
	assert.Equal(t, "/transactions", sender.sent[0].Link)
}

func TestSyncOnce_NoAPIURLSkips(t *testing.T) {
	st := newMemSyncStore()
	st.subs = []store.WorkerSubscription{{Account: "0xabc", Token: "tok-1"}}

	sender := &fakeSender{}
	s := setupSyncer(st, sender)

	s.syncOnce(context.Background())

	assert.Empty(t, sender.sent)
}

func TestSyncOnce_ServerDownAbandonsSilently(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	st := newMemSyncStore()
	st.apiURL = srv.URL
	st.subs = []store.WorkerSubscription{{Account: "0xabc", Token: "tok-1"}}

	sender := &fakeSender{}
	s := setupSyncer(st, sender)

	s.syncOnce(context.Background())

	assert.Empty(t, sender.sent)
	assert.Empty(t, st.stale)
}

func TestSyncOnce_ReminderThrottle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"type":"contribution_due","title":"Contribution Due","message":"Time to contribute.","priority":"high"}
		]}`))
	}))
	defer srv.Close()

	st := newMemSyncStore()
	st.apiURL = srv.URL
	st.subs = []store.WorkerSubscription{{Account: "0xabc", Token: "tok-1"}}

	sender := &fakeSender{}
	s := setupSyncer(st, sender)

	// First pass shows the reminder and records it.
	s.syncOnce(context.Background())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, s.now(), st.reminders["0xabc"].LastShown)

	// A second pass inside the gap is throttled.
	s.syncOnce(context.Background())
	assert.Len(t, sender.sent, 1)

	// Snoozed reminders stay silent even outside the gap.
	st.reminders["0xabc"] = store.ReminderState{
		Account:     "0xabc",
		Enabled:     true,
		SnoozeUntil: s.now().Add(time.Hour),
	}
	s.syncOnce(context.Background())
	assert.Len(t, sender.sent, 1)
}

func TestSyncOnce_DisabledReminders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"type":"goal_deadline_reminder","title":"Goal Deadline Approaching","message":"Keep saving!","priority":"medium"}
		]}`))
	}))
	defer srv.Close()

	st := newMemSyncStore()
	st.apiURL = srv.URL
	st.subs = []store.WorkerSubscription{{Account: "0xabc", Token: "tok-1"}}
	st.reminders["0xabc"] = store.ReminderState{Account: "0xabc", Enabled: false}

	sender := &fakeSender{}
	s := setupSyncer(st, sender)

	s.syncOnce(context.Background())

	assert.Empty(t, sender.sent)
}
