// Package sync polls the upstream event sources on a fixed cadence and feeds
// snapshots to the orchestrator. The poller decides *when* to look; it never
// decides *what* is new — that is the mapper's job.
package sync

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
)

type eventSource interface {
	Snapshot(ctx context.Context, account string) (model.Snapshot, error)
}

type accountLister interface {
	ListAccounts(ctx context.Context) ([]string, error)
}

// Poller periodically fetches a snapshot per tracked account.
type Poller struct {
	source       eventSource
	accounts     accountLister
	interval     time.Duration
	fetchTimeout time.Duration
	out          chan model.Snapshot
	trigger      chan string
}

func NewPoller(source eventSource, accounts accountLister, interval, fetchTimeout time.Duration) *Poller {
	return &Poller{
		source:       source,
		accounts:     accounts,
		interval:     interval,
		fetchTimeout: fetchTimeout,
		out:          make(chan model.Snapshot),
		trigger:      make(chan string, 16),
	}
}

// Snapshots returns the channel the orchestrator consumes.
func (p *Poller) Snapshots() <-chan model.Snapshot {
	return p.out
}

// Trigger requests an on-demand refetch for one account. Non-blocking: when
// the trigger buffer is full the request is dropped, the next cycle will
// cover it anyway.
func (p *Poller) Trigger(account string) {
	select {
	case p.trigger <- account:
	default:
	}
}

// Run polls until ctx is cancelled. A failed fetch degrades to "no new events
// this cycle" for that account; a cancelled fetch mid-batch is safe because
// the mapper's partial writes are idempotent to resume.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Print("poller stopped")
			return
		case account := <-p.trigger:
			p.poll(ctx, account)
		case <-ticker.C:
			accounts, err := p.accounts.ListAccounts(ctx)
			if err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to list tracked accounts")
				continue
			}

			for _, account := range accounts {
				if ctx.Err() != nil {
					return
				}
				p.poll(ctx, account)
			}
		}
	}
}

func (p *Poller) poll(ctx context.Context, account string) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	snap, err := p.source.Snapshot(fetchCtx, account)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("account", account).Msg("failed to fetch snapshot")
		return
	}

	select {
	case <-ctx.Done():
	case p.out <- snap:
	}
}
