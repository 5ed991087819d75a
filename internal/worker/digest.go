package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"finvault/internal/core"
	"finvault/internal/insights"
	"finvault/internal/mail"
)

const (
	digestConcurrency = 4
	digestDays        = 7
)

// DigestStore is the persistence the digest job needs.
type DigestStore interface {
	ListUsers(ctx context.Context) ([]core.User, error)
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
}

// DigestJob e-mails every user with recent spending a summary of patterns
// and recommendations.
type DigestJob struct {
	store  DigestStore
	mailer mail.Mailer
	now    func() time.Time
}

func NewDigestJob(store DigestStore, mailer mail.Mailer) *DigestJob {
	return &DigestJob{store: store, mailer: mailer, now: time.Now}
}

// DigestStats summarizes one run.
type DigestStats struct {
	Sent    int
	Skipped int
	Failed  int
}

// Run processes users concurrently. Per-user failures are counted, not
// returned; only listing users can fail the run.
func (j *DigestJob) Run(ctx context.Context) (DigestStats, error) {
	users, err := j.store.ListUsers(ctx)
	if err != nil {
		return DigestStats{}, fmt.Errorf("list users: %w", err)
	}

	now := j.now()
	var sent, skipped, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(digestConcurrency)
	for _, u := range users {
		u := u
		g.Go(func() error {
			ok, err := j.sendOne(gctx, u, now)
			switch {
			case err != nil:
				failed.Add(1)
				slog.WarnContext(gctx, "Digest failed", "component", "scheduler", "user_id", u.ID, "error", err)
			case ok:
				sent.Add(1)
			default:
				skipped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	stats := DigestStats{Sent: int(sent.Load()), Skipped: int(skipped.Load()), Failed: int(failed.Load())}
	slog.InfoContext(ctx, "Weekly digest finished", "component", "scheduler", "sent", stats.Sent, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, nil
}

func (j *DigestJob) sendOne(ctx context.Context, u core.User, now time.Time) (bool, error) {
	txns, err := j.store.ListTransactions(ctx, u.ID)
	if err != nil {
		return false, err
	}
	patterns := insights.AnalyzePatterns(txns, now)
	if !patterns.HasData {
		return false, nil
	}
	recs := insights.Recommend(txns, now)
	err = j.mailer.SendDigest(ctx, u.Email, mail.Digest{
		Name:            u.Name,
		WeekSpend:       insights.ExpenseTotal(txns, insights.LastDays(now, digestDays)),
		Patterns:        patterns.Patterns,
		Recommendations: recs.Recommendations,
	})
	return err == nil, err
}

// Scheduler runs the digest job on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(ctx context.Context, spec string, job *DigestJob) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := job.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "Weekly digest failed", "component", "scheduler", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule digest %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
