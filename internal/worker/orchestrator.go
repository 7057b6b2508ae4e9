package worker

import (
	"context"
	"sync"

	"github.com/wb-go/wbf/zlog"

	"github.com/circlepot/notifier/internal/model"
)

type snapshotSource interface {
	Snapshots() <-chan model.Snapshot
}

type snapshotMapper interface {
	Process(ctx context.Context, snap model.Snapshot) error
}

// Orchestrator re-runs the mapper whenever an upstream snapshot arrives.
//
// It owns no scheduling of its own: cadence belongs to the poller feeding the
// snapshot channel. Redundant invocations with identical snapshots are
// expected, and correctness rests entirely on the mapper's dedup discipline.
type Orchestrator struct {
	source snapshotSource
	mapper snapshotMapper
}

func NewOrchestrator(source snapshotSource, mapper snapshotMapper) *Orchestrator {
	return &Orchestrator{
		source: source,
		mapper: mapper,
	}
}

// Run processes snapshots with workerCount workers until ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context, workerCount int) {
	var wg sync.WaitGroup

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("orchestrator worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("orchestrator worker-%d shutting down", id)
					return
				case snap, ok := <-o.source.Snapshots():
					if !ok {
						zlog.Logger.Printf("orchestrator worker-%d channel closed, shutting down", id)
						return
					}

					// A failed batch degrades to "no new notifications this
					// cycle"; nothing is retried here, the next poll covers it.
					if err := o.mapper.Process(ctx, snap); err != nil {
						zlog.Logger.Error().Err(err).Str("account", snap.Account).Msg("failed to process snapshot")
					}
				}
			}
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	zlog.Logger.Print("orchestrator stopped")
}
