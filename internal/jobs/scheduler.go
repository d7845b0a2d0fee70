package jobs

import (
	"fmt"
	"time"

	"github.com/21f1006580/quiz-master/config"
	"github.com/21f1006580/quiz-master/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler owns the recurring jobs: the expiry sweep, expiry warnings, daily
// reminders, and monthly reports. All schedules are evaluated in UTC so they
// agree with the availability engine's time basis.
type Scheduler struct {
	cron *cron.Cron
}

type cronLog struct{}

func (cronLog) Printf(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func NewScheduler(
	cfg *config.Config,
	expiryService service.ExpiryService,
	notificationService service.NotificationService,
) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cron.PrintfLogger(cronLog{}))),
	)

	if _, err := c.AddFunc(cfg.Jobs.ExpirySweepSchedule, func() {
		if _, err := expiryService.SweepExpired(time.Now()); err != nil {
			log.Error().Err(err).Msg("Expiry sweep job failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("registering expiry sweep job: %w", err)
	}

	if _, err := c.AddFunc(cfg.Jobs.ExpiryWarningSchedule, func() {
		if _, err := notificationService.SendExpiryWarnings(time.Now()); err != nil {
			log.Error().Err(err).Msg("Expiry warning job failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("registering expiry warning job: %w", err)
	}

	if _, err := c.AddFunc(cfg.Jobs.DailyReminderSchedule, func() {
		if _, err := notificationService.SendDailyReminders(time.Now()); err != nil {
			log.Error().Err(err).Msg("Daily reminder job failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("registering daily reminder job: %w", err)
	}

	if _, err := c.AddFunc(cfg.Jobs.MonthlyReportSchedule, func() {
		if _, err := notificationService.SendMonthlyReports(time.Now()); err != nil {
			log.Error().Err(err).Msg("Monthly report job failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("registering monthly report job: %w", err)
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Msg("Background job scheduler started")
}

// Stop halts scheduling and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Background job scheduler stopped")
}
