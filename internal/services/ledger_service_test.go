package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"finvault/internal/amqp"
	"finvault/internal/core"
)

func newLedgerUser(t *testing.T, svc *AuthService) core.User {
	t.Helper()
	u, err := svc.Signup(context.Background(), "Owner", "owner@example.com", "secret1")
	require.NoError(t, err)
	return u
}

func TestLedgerService_TransactionLifecycle(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := newRepo(t)
	user := newLedgerUser(t, NewAuthService(repo, nil, testSecret, 0))

	pub := NewMockEventPublisher(ctrl)
	inv := &recordingInvalidator{}
	svc := NewLedgerService(repo, pub, inv)

	var events []*amqp.TransactionEvent
	pub.EXPECT().PublishTransactionEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *amqp.TransactionEvent) error {
			events = append(events, e)
			return nil
		}).Times(3)

	created, err := svc.CreateTransaction(ctx, expense(user.ID, "250.50", "Food", core.NewDate(2025, 6, 1)))
	require.NoError(t, err)

	created.Amount = dec("300")
	updated, err := svc.UpdateTransaction(ctx, created)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("300")))

	require.NoError(t, svc.DeleteTransaction(ctx, user.ID, created.ID))

	require.Len(t, events, 3)
	assert.Equal(t, amqp.ActionCreated, events[0].Action)
	assert.Equal(t, int64(1), events[0].Version)
	assert.Equal(t, amqp.ActionUpdated, events[1].Action)
	assert.Equal(t, int64(2), events[1].Version)
	assert.Equal(t, amqp.ActionDeleted, events[2].Action)
	for _, e := range events {
		assert.Equal(t, created.ID, e.TransactionID)
		assert.Equal(t, user.ID, e.UserID)
	}
	assert.Equal(t, []string{user.ID, user.ID, user.ID}, inv.users)

	err = svc.DeleteTransaction(ctx, user.ID, created.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestLedgerService_SideEffectsNeverFailWrites(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := newRepo(t)
	user := newLedgerUser(t, NewAuthService(repo, nil, testSecret, 0))

	pub := NewMockEventPublisher(ctrl)
	pub.EXPECT().PublishTransactionEvent(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	_, err := NewLedgerService(repo, pub, nil).CreateTransaction(ctx, expense(user.ID, "10", "Misc", core.NewDate(2025, 6, 1)))
	assert.NoError(t, err)

	_, err = NewLedgerService(repo, nil, nil).CreateTransaction(ctx, expense(user.ID, "10", "Misc", core.NewDate(2025, 6, 2)))
	assert.NoError(t, err)

	txns, err := repo.ListTransactions(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestLedgerService_ValidationSkipsEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := NewMockEventPublisher(ctrl)
	svc := NewLedgerService(newRepo(t), pub, nil)

	bad := expense("u1", "0", "Food", core.NewDate(2025, 6, 1))
	_, err := svc.CreateTransaction(context.Background(), bad)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	bad = expense("u1", "5", " ", core.NewDate(2025, 6, 1))
	_, err = svc.CreateTransaction(context.Background(), bad)
	assert.ErrorIs(t, err, core.ErrEmptyCategory)
}

func TestLedgerService_GoalsAndInvestments(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	user := newLedgerUser(t, NewAuthService(repo, nil, testSecret, 0))
	svc := NewLedgerService(repo, nil, nil)

	_, err := svc.CreateGoal(ctx, core.Goal{UserID: user.ID, Name: "", TargetAmount: dec("100"), Deadline: core.NewDate(2026, 1, 1)})
	assert.ErrorIs(t, err, core.ErrEmptyName)

	goal, err := svc.CreateGoal(ctx, core.Goal{UserID: user.ID, Name: "Bike", TargetAmount: dec("1000"), CurrentAmount: dec("250"), Deadline: core.NewDate(2026, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, "25", goal.Progress().String())

	goals, err := svc.ListGoals(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	inv, err := svc.CreateInvestment(ctx, core.Investment{UserID: user.ID, Name: "Index fund", Type: "mutual_fund", Amount: dec("1000"), CurrentValue: dec("1100"), PurchaseDate: core.NewDate(2024, 1, 1)})
	require.NoError(t, err)
	assert.Equal(t, "10", inv.ReturnPercent().String())

	require.NoError(t, svc.DeleteInvestment(ctx, user.ID, inv.ID))
	assert.ErrorIs(t, svc.DeleteGoal(ctx, "someone-else", goal.ID), core.ErrNotFound)
}
