package jobs // jobs schedules the recurring background tasks

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"computer-club/internal/logger"
	"computer-club/internal/repository"
)

// jobTimeout bounds every repository call made from a scheduled job.
const jobTimeout = 30 * time.Second

// Scheduler wraps the cron runner with the repositories the jobs read.
type Scheduler struct {
	cron     *cron.Cron
	payments repository.PaymentRepository
	sessions repository.SessionRepository

	// LongSessionLimit marks sessions the watchdog reports.  Sessions
	// active longer than this are logged every minute until closed.
	LongSessionLimit time.Duration
}

// NewScheduler builds a scheduler with the default 12 hour long-session
// limit.  Start must be called to begin running jobs.
func NewScheduler(payments repository.PaymentRepository, sessions repository.SessionRepository) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		payments:         payments,
		sessions:         sessions,
		LongSessionLimit: 12 * time.Hour,
	}
}

// Start registers the jobs and launches the cron runner in its own
// goroutine.  Registration errors are fatal misconfigurations and are
// returned before anything runs.
func (s *Scheduler) Start() error {
	// Yesterday's revenue, shortly after midnight.
	if _, err := s.cron.AddFunc("5 0 * * *", s.reportDailyRevenue); err != nil {
		return err
	}
	// Long-running session watchdog.
	if _, err := s.cron.AddFunc("* * * * *", s.reportLongSessions); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the runner and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) reportDailyRevenue() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	day := time.Now().UTC().AddDate(0, 0, -1)
	total, err := s.payments.TotalRevenue(ctx, day)
	if err != nil {
		logger.Error("daily revenue job", zap.Error(err))
		return
	}
	logger.Info("daily revenue",
		zap.String("date", day.Format("2006-01-02")),
		zap.String("total", total.StringFixed(2)))
}

func (s *Scheduler) reportLongSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	active, err := s.sessions.FindActive(ctx)
	if err != nil {
		logger.Error("long session watchdog", zap.Error(err))
		return
	}
	now := time.Now().UTC()
	for _, sess := range active {
		if age := now.Sub(sess.StartTime); age > s.LongSessionLimit {
			logger.Warn("session active beyond limit",
				zap.String("session_id", sess.ID.String()),
				zap.String("client_id", sess.ClientID.String()),
				zap.Duration("age", age))
		}
	}
}
