package services

//go:generate mockgen -source=ports.go -destination=ports_mock.go -package=services

import (
	"context"

	"finvault/internal/amqp"
	"finvault/internal/core"
)

// TransactionReader loads a user's ledger, newest date first.
type TransactionReader interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
}

// EventPublisher announces ledger writes to other processes.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event *amqp.TransactionEvent) error
}

// TaxStore persists one tax profile per user and financial year.
type TaxStore interface {
	GetTaxProfile(ctx context.Context, userID, financialYear string) (core.TaxProfile, error)
	UpsertTaxProfile(ctx context.Context, p core.TaxProfile) (core.TaxProfile, error)
}
