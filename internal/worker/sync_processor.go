package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PendingProcessor periodically runs SyncWorker.ProcessPending as a backup
// for events lost on the broker.
type PendingProcessor struct {
	worker   *SyncWorker
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewPendingProcessor(worker *SyncWorker, interval time.Duration) *PendingProcessor {
	return &PendingProcessor{worker: worker, interval: interval}
}

// Start begins the processing loop. Returns an error if already running.
func (p *PendingProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return fmt.Errorf("pending processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Pending processor started", "component", "worker", "interval", p.interval)
	return nil
}

// Stop signals the loop and waits for the current batch to finish.
func (p *PendingProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	close(p.stopCh)
	done := p.doneCh
	p.mu.Unlock()

	select {
	case <-done:
		slog.InfoContext(ctx, "Pending processor stopped", "component", "worker")
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "Pending processor stop timed out", "component", "worker")
		return ctx.Err()
	}
}

func (p *PendingProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *PendingProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runOnce(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *PendingProcessor) runOnce(ctx context.Context) {
	if err := p.worker.ProcessPending(ctx); err != nil && ctx.Err() == nil {
		slog.WarnContext(ctx, "Pending sync pass failed", "component", "worker", "error", err)
	}
}
