package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"finvault/internal/cache"
	"finvault/internal/core"
)

func sampleLedger() []core.Transaction {
	return []core.Transaction{
		expense("u1", "500", "Food", core.NewDate(2025, 6, 10)),
		expense("u1", "300", "Travel", core.NewDate(2025, 5, 20)),
		expense("u1", "200", "Food", core.NewDate(2025, 4, 5)),
		expense("u1", "100", "Food", core.NewDate(2025, 3, 1)),
		expense("u1", "400", "Rent", core.NewDate(2025, 2, 1)),
		{UserID: "u1", Amount: dec("5000"), Type: core.Income, Category: "Salary", Date: core.NewDate(2025, 6, 1)},
	}
}

func newInsights(t *testing.T) (*InsightsService, *MockTransactionReader) {
	ctrl := gomock.NewController(t)
	reader := NewMockTransactionReader(ctrl)
	svc := NewInsightsService(reader, cache.NewLRUCache[any](100, time.Hour)).
		WithClock(func() time.Time { return refNow })
	return svc, reader
}

func TestInsightsService_CachesPerKind(t *testing.T) {
	ctx := context.Background()
	svc, reader := newInsights(t)
	reader.EXPECT().ListTransactions(gomock.Any(), "u1").Return(sampleLedger(), nil).Times(2)

	first, err := svc.Patterns(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, first.HasData)

	second, err := svc.Patterns(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	forecast, err := svc.Predictions(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, forecast.HasData)
}

func TestInsightsService_InvalidateReloads(t *testing.T) {
	ctx := context.Background()
	svc, reader := newInsights(t)
	gomock.InOrder(
		reader.EXPECT().ListTransactions(gomock.Any(), "u1").Return(nil, nil),
		reader.EXPECT().ListTransactions(gomock.Any(), "u1").Return(sampleLedger(), nil),
	)

	empty, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, empty.HasData)
	assert.Empty(t, empty.Recommendations)

	svc.InvalidateUser("u1")

	got, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.HasData)
	assert.NotEmpty(t, got.Recommendations)
}

func TestInsightsService_InvalidateDuringLoadIsNotCached(t *testing.T) {
	ctx := context.Background()
	svc, reader := newInsights(t)

	loading := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		reader.EXPECT().ListTransactions(gomock.Any(), "u1").
			DoAndReturn(func(context.Context, string) ([]core.Transaction, error) {
				close(loading)
				<-release
				return nil, nil // snapshot from before the write
			}),
		reader.EXPECT().ListTransactions(gomock.Any(), "u1").Return(sampleLedger(), nil),
	)

	done := make(chan error, 1)
	go func() {
		rep, err := svc.Patterns(ctx, "u1")
		if err == nil && rep.HasData {
			err = errors.New("first load should see the empty ledger")
		}
		done <- err
	}()

	<-loading
	svc.InvalidateUser("u1")
	close(release)
	require.NoError(t, <-done)

	got, err := svc.Patterns(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, got.HasData, "result of the stale load must not be served")
}

func TestInsightsService_OverviewLoadsOnce(t *testing.T) {
	ctx := context.Background()
	svc, reader := newInsights(t)
	reader.EXPECT().ListTransactions(gomock.Any(), "u1").Return(sampleLedger(), nil).Times(1)

	ov, err := svc.Overview(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ov.Patterns.HasData)
	assert.True(t, ov.Predictions.HasData)
	assert.True(t, ov.Recommendations.HasData)

	// served from cache after the overview
	_, err = svc.Patterns(ctx, "u1")
	require.NoError(t, err)
	again, err := svc.Overview(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, ov, again)
}

func TestInsightsService_LoadError(t *testing.T) {
	svc, reader := newInsights(t)
	reader.EXPECT().ListTransactions(gomock.Any(), "u1").Return(nil, errors.New("db locked")).Times(2)

	_, err := svc.Patterns(context.Background(), "u1")
	assert.ErrorContains(t, err, "db locked")
	_, err = svc.Overview(context.Background(), "u1")
	assert.ErrorContains(t, err, "load transactions")
}
