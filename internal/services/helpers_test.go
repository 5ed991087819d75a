package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"finvault/internal/core"
	"finvault/internal/mail"
	"finvault/internal/storage"
)

var refNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "finvault.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(userID, amount, category string, d core.Date) core.Transaction {
	return core.Transaction{UserID: userID, Amount: dec(amount), Type: core.Expense, Category: category, Date: d}
}

type recordingMailer struct {
	mu      sync.Mutex
	welcome []string
	digests []string
	err     error
}

func (m *recordingMailer) SendWelcome(_ context.Context, to, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.welcome = append(m.welcome, to)
	return m.err
}

func (m *recordingMailer) SendDigest(_ context.Context, to string, _ mail.Digest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digests = append(m.digests, to)
	return m.err
}

type recordingInvalidator struct{ users []string }

func (r *recordingInvalidator) InvalidateUser(userID string) { r.users = append(r.users, userID) }
