package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finvault/internal/amqp"
	"finvault/internal/core"
	"finvault/internal/sheets"
	"finvault/internal/storage"
)

// SyncStore is the persistence SyncWorker needs.
type SyncStore interface {
	GetTransactionByID(ctx context.Context, id string) (storage.StoredTransaction, error)
	GetPendingSync(ctx context.Context, limit int) ([]storage.PendingSync, error)
	MarkSynced(ctx context.Context, id string, version int64) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker mirrors ledger changes from SQLite into a TransactionMirror.
type SyncWorker struct {
	store     SyncStore
	mirror    sheets.TransactionMirror
	batchSize int
}

func NewSyncWorker(store SyncStore, mirror sheets.TransactionMirror, batchSize int) *SyncWorker {
	return &SyncWorker{store: store, mirror: mirror, batchSize: batchSize}
}

// HandleEvent processes one transaction.changed event from AMQP.
func (w *SyncWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"component", "worker",
		"event_id", event.EventID,
		"transaction_id", event.TransactionID,
		"action", event.Action)

	if event.Action == amqp.ActionDeleted {
		if err := w.mirror.Remove(ctx, event.TransactionID); err != nil {
			return fmt.Errorf("remove mirrored row: %w", err)
		}
		return nil
	}

	return w.syncOne(ctx, event.TransactionID)
}

// ProcessPending mirrors transactions still pending, covering lost events.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "component", "worker", "count", len(pending))

	var failed int
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.syncOne(ctx, p.ID); err != nil {
			failed++
			slog.ErrorContext(ctx, "Failed to mirror pending transaction", "component", "worker", "transaction_id", p.ID, "error", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pending transactions failed", failed, len(pending))
	}
	return nil
}

func (w *SyncWorker) syncOne(ctx context.Context, id string) error {
	stored, err := w.store.GetTransactionByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		// deleted before we got to it
		return w.mirror.Remove(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	ref, err := w.mirror.Upsert(ctx, stored.Transaction)
	if err != nil {
		if markErr := w.store.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "component", "worker", "transaction_id", id, "error", markErr)
		}
		return fmt.Errorf("mirror transaction: %w", err)
	}

	if err := w.store.MarkSynced(ctx, id, stored.Version); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction mirrored", "component", "worker", "transaction_id", id, "version", stored.Version, "row", ref)
	return nil
}
