package services

import (
	"context"
	"fmt"
	"log/slog"

	"finvault/internal/amqp"
	"finvault/internal/core"
	applog "finvault/internal/log"
	"finvault/internal/storage"
)

// LedgerStore is the persistence LedgerService needs.
type LedgerStore interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) (storage.StoredTransaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error

	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error

	ListInvestments(ctx context.Context, userID string) ([]core.Investment, error)
	CreateInvestment(ctx context.Context, i core.Investment) (core.Investment, error)
	UpdateInvestment(ctx context.Context, i core.Investment) (core.Investment, error)
	DeleteInvestment(ctx context.Context, userID, id string) error
}

// Invalidator drops derived data cached for a user.
type Invalidator interface {
	InvalidateUser(userID string)
}

// LedgerService orchestrates ledger writes across SQLite, the insights cache
// and AMQP. The SQLite write is authoritative; cache and event side effects
// never fail a request.
type LedgerService struct {
	store     LedgerStore
	publisher EventPublisher
	cache     Invalidator
}

// NewLedgerService accepts nil publisher and cache.
func NewLedgerService(store LedgerStore, publisher EventPublisher, cache Invalidator) *LedgerService {
	return &LedgerService{store: store, publisher: publisher, cache: cache}
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	saved, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.changed(ctx, saved, amqp.ActionCreated, 1)
	return saved, nil
}

func (s *LedgerService) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	saved, err := s.store.UpdateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	s.changed(ctx, saved.Transaction, amqp.ActionUpdated, saved.Version)
	return saved.Transaction, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.changed(ctx, core.Transaction{ID: id, UserID: userID}, amqp.ActionDeleted, 0)
	return nil
}

func (s *LedgerService) changed(ctx context.Context, t core.Transaction, action amqp.Action, version int64) {
	applog.LogTransactionChanged(ctx, string(action), t.UserID, t.ID, string(t.Type), t.Amount.String(), t.Category)

	if s.cache != nil {
		s.cache.InvalidateUser(t.UserID)
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping transaction event", "component", "ledger", "transaction_id", t.ID)
		return
	}
	event := amqp.NewTransactionEvent(t.UserID, t.ID, action, version)
	if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"component", "ledger",
			"transaction_id", t.ID,
			"action", action,
			"error", err)
	}
}

func (s *LedgerService) ListGoals(ctx context.Context, userID string) ([]core.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

func (s *LedgerService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	return s.store.CreateGoal(ctx, g)
}

func (s *LedgerService) UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	return s.store.UpdateGoal(ctx, g)
}

func (s *LedgerService) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.store.DeleteGoal(ctx, userID, id)
}

func (s *LedgerService) ListInvestments(ctx context.Context, userID string) ([]core.Investment, error) {
	return s.store.ListInvestments(ctx, userID)
}

func (s *LedgerService) CreateInvestment(ctx context.Context, i core.Investment) (core.Investment, error) {
	if err := i.Validate(); err != nil {
		return core.Investment{}, err
	}
	return s.store.CreateInvestment(ctx, i)
}

func (s *LedgerService) UpdateInvestment(ctx context.Context, i core.Investment) (core.Investment, error) {
	if err := i.Validate(); err != nil {
		return core.Investment{}, err
	}
	return s.store.UpdateInvestment(ctx, i)
}

func (s *LedgerService) DeleteInvestment(ctx context.Context, userID, id string) error {
	return s.store.DeleteInvestment(ctx, userID, id)
}
