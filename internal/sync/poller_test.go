package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/circlepot/notifier/internal/model"
)

type fakeSource struct {
	err error
}

func (f *fakeSource) Snapshot(_ context.Context, account string) (model.Snapshot, error) {
	if f.err != nil {
		return model.Snapshot{}, f.err
	}
	return model.Snapshot{Account: account}, nil
}

type fakeAccounts struct {
	accounts []string
}

func (f *fakeAccounts) ListAccounts(_ context.Context) ([]string, error) {
	return f.accounts, nil
}

func TestPoller_TriggerFetchesOnDemand(t *testing.T) {
	p := NewPoller(&fakeSource{}, &fakeAccounts{}, time.Hour, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.Trigger("0xabc")

	select {
	case snap := <-p.Snapshots():
		assert.Equal(t, "0xabc", snap.Account)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestPoller_TickCoversTrackedAccounts(t *testing.T) {
	accounts := &fakeAccounts{accounts: []string{"0xabc", "0xdef"}}
	p := NewPoller(&fakeSource{}, accounts, 50*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	seen := make(map[string]bool)
	for len(seen) < 2 {
		select {
		case snap := <-p.Snapshots():
			seen[snap.Account] = true
		case <-time.After(2 * time.Second):
			t.Fatal("tick did not cover all accounts")
		}
	}

	assert.True(t, seen["0xabc"])
	assert.True(t, seen["0xdef"])
}

func TestPoller_FailedFetchSkipsAccount(t *testing.T) {
	p := NewPoller(&fakeSource{err: errors.New("subgraph down")}, &fakeAccounts{}, time.Hour, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	p.Trigger("0xabc")

	select {
	case snap := <-p.Snapshots():
		t.Fatalf("unexpected snapshot for %s", snap.Account)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPoller_TriggerNeverBlocks(t *testing.T) {
	p := NewPoller(&fakeSource{}, &fakeAccounts{}, time.Hour, time.Second)

	// Nothing is draining the trigger buffer; overflow must drop, not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Trigger("0xabc")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("trigger blocked")
	}
}
