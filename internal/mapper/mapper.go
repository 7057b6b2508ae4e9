// Package mapper turns domain-event snapshots into notification records.
//
// Each event family is processed by its own routine; all of them share one
// discipline: check preferences first (never consuming a dedup key for a
// gated-off category), then atomically claim the key, and only then append
// the record. Re-running the mapper with an identical snapshot is therefore
// always a no-op.
package mapper

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
	"github.com/circlepot/notifier/internal/routes"
)

type dedupStore interface {
	// Claim atomically records key as consumed and reports whether this call
	// was the first to do so.
	Claim(ctx context.Context, account, key string) (bool, error)
}

type preferenceSource interface {
	Get(ctx context.Context, account string) (model.Preferences, error)
}

type recordSink interface {
	Append(ctx context.Context, n model.Notification) error
}

// Mapper maps snapshots to notifications with at-most-once semantics per
// dedup key.
type Mapper struct {
	dedup dedupStore
	prefs preferenceSource
	sink  recordSink
	now   func() time.Time
}

func New(dedup dedupStore, prefs preferenceSource, sink recordSink) *Mapper {
	return &Mapper{
		dedup: dedup,
		prefs: prefs,
		sink:  sink,
		now:   time.Now,
	}
}

// Process runs the full family pipeline against one snapshot.
//
// When the in-app master switch is off it short-circuits without consuming
// any dedup keys, so a later re-enable can still surface the events.
func (m *Mapper) Process(ctx context.Context, snap model.Snapshot) error {
	prefs, err := m.prefs.Get(ctx, snap.Account)
	if err != nil {
		return err
	}

	if !prefs.InAppEnabled {
		return nil
	}

	m.processCircles(ctx, snap.Account, prefs, snap.Circles)
	m.processGoals(ctx, snap.Account, prefs, snap.Goals)
	m.processTransactions(ctx, snap.Account, prefs, snap.Transactions)
	m.processReputation(ctx, snap.Account, prefs, snap.Reputation)
	m.processCategoryChanges(ctx, snap.Account, prefs, snap.CategoryChanges)
	m.processReferralRewards(ctx, snap.Account, prefs, snap.ReferralRewards)

	return nil
}

// emit applies the gate-claim-append discipline for a single candidate
// notification. A disabled category consumes no key; a failed claim or append
// never aborts the rest of the batch.
func (m *Mapper) emit(ctx context.Context, prefs model.Preferences, key string, n model.Notification) {
	if !prefs.CategoryEnabled(n.Type) {
		return
	}

	claimed, err := m.dedup.Claim(ctx, n.Account, key)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to claim dedup key")
		return
	}
	if !claimed {
		return
	}

	action := routes.ActionForType(n.Type)
	n.Action = &action
	n.CreatedAt = m.now()

	if err := m.sink.Append(ctx, n); err != nil {
		zlog.Logger.Error().Err(err).Str("key", key).Msg("failed to append notification")
	}
}

// nonEmpty returns s, or fallback when s is blank. Malformed events degrade
// to placeholder text instead of failing the batch.
func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
