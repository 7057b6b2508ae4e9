package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/circlepot/notifier/internal/model"
)

type fakeSnapshotSource struct {
	ch chan model.Snapshot
}

func (f *fakeSnapshotSource) Snapshots() <-chan model.Snapshot {
	return f.ch
}

type countingMapper struct {
	mu        sync.Mutex
	processed []string
	err       error
}

func (c *countingMapper) Process(_ context.Context, snap model.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processed = append(c.processed, snap.Account)
	return c.err
}

func (c *countingMapper) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.processed)
}

func TestOrchestrator_ProcessesSnapshots(t *testing.T) {
	source := &fakeSnapshotSource{ch: make(chan model.Snapshot)}
	mapper := &countingMapper{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	o := NewOrchestrator(source, mapper)
	go func() {
		o.Run(ctx, 2)
		close(done)
	}()

	source.ch <- model.Snapshot{Account: "0xabc"}
	source.ch <- model.Snapshot{Account: "0xdef"}

	assert.Eventually(t, func() bool { return mapper.count() == 2 },
		2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("orchestrator did not stop")
	}
}

func TestOrchestrator_MapperErrorDoesNotStopWorkers(t *testing.T) {
	source := &fakeSnapshotSource{ch: make(chan model.Snapshot)}
	mapper := &countingMapper{err: errors.New("db down")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go NewOrchestrator(source, mapper).Run(ctx, 1)

	source.ch <- model.Snapshot{Account: "0xabc"}
	source.ch <- model.Snapshot{Account: "0xabc"}

	assert.Eventually(t, func() bool { return mapper.count() == 2 },
		2*time.Second, 10*time.Millisecond)
}
