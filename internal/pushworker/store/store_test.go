package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *Store {
	s, err := New(filepath.Join(t.TempDir(), "worker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAPIURL_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	url, err := s.APIURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", url)

	require.NoError(t, s.SetAPIURL(ctx, "http://localhost:8080"))

	url, err = s.APIURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", url)

	// Reconfiguring replaces the stored value.
	require.NoError(t, s.SetAPIURL(ctx, "http://example.com"))
	url, err = s.APIURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", url)
}

func TestSubscriptionLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	_, err := s.Subscription(ctx, "0xabc")
	assert.ErrorIs(t, err, ErrUnknownSubscription)

	require.NoError(t, s.UpsertSubscription(ctx, "0xabc", "tok-1", StatusSubscribed))
	require.NoError(t, s.UpsertSubscription(ctx, "0xdef", "tok-2", StatusRegistered))

	sub, err := s.Subscription(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sub.Token)
	assert.Equal(t, StatusSubscribed, sub.Status)

	active, err := s.ActiveSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, s.MarkStale(ctx, "0xabc"))

	active, err = s.ActiveSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "0xdef", active[0].Account)

	// A fresh upsert recovers the stale record.
	require.NoError(t, s.UpsertSubscription(ctx, "0xabc", "tok-3", StatusRegistered))
	active, err = s.ActiveSubscriptions(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, s.Delete(ctx, "0xdef"))
	_, err = s.Subscription(ctx, "0xdef")
	assert.ErrorIs(t, err, ErrUnknownSubscription)
}

func TestReminderState_DefaultsEnabled(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	state, err := s.ReminderState(ctx, "0xabc")
	require.NoError(t, err)
	assert.True(t, state.Enabled)
	assert.True(t, state.LastShown.IsZero())

	state.Enabled = false
	require.NoError(t, s.SetReminderState(ctx, state))

	state, err = s.ReminderState(ctx, "0xabc")
	require.NoError(t, err)
	assert.False(t, state.Enabled)
}

func TestMigrations_RunTwiceSafely(t *testing.T) {
	s := setupStore(t)
	assert.NoError(t, s.runMigrations())
}
