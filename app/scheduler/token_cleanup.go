// Package scheduler runs periodic maintenance jobs against the admin tables
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/amirphl/Omoikane/config"
	"github.com/amirphl/Omoikane/repository"
	"github.com/amirphl/Omoikane/utils"
	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single cleanup run
const jobTimeout = time.Minute

// TokenCleanupScheduler purges expired password reset tokens and expires stale admin invites
type TokenCleanupScheduler struct {
	adminRepo     repository.AdminAuthRepository
	activationTTL time.Duration
	logger        *log.Logger
	cron          *cron.Cron
	ctx           context.Context
}

func NewTokenCleanupScheduler(
	adminRepo repository.AdminAuthRepository,
	cfg config.SchedulerConfig,
	activationTTL time.Duration,
	logger *log.Logger,
) (*TokenCleanupScheduler, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "scheduler ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
	}
	if activationTTL <= 0 {
		activationTTL = utils.ActivationTokenTTL
	}

	s := &TokenCleanupScheduler{
		adminRepo:     adminRepo,
		activationTTL: activationTTL,
		logger:        logger,
		ctx:           context.Background(),
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cron.PrintfLogger(logger)), cron.SkipIfStillRunning(cron.PrintfLogger(logger))),
		),
	}

	if _, err := s.cron.AddFunc(cfg.ResetTokenPurgeSpec, s.runPurgeResetTokens); err != nil {
		return nil, fmt.Errorf("invalid reset token purge schedule %q: %w", cfg.ResetTokenPurgeSpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.ActivationExpirySpec, s.runExpireActivationTokens); err != nil {
		return nil, fmt.Errorf("invalid activation expiry schedule %q: %w", cfg.ActivationExpirySpec, err)
	}
	return s, nil
}

// Start runs both jobs once, then on their schedules, and returns a stop function
// that waits for running jobs to finish
func (s *TokenCleanupScheduler) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)
	s.ctx = ctx

	s.runPurgeResetTokens()
	s.runExpireActivationTokens()
	s.cron.Start()
	s.logger.Printf("scheduler: started with %d jobs", len(s.cron.Entries()))

	return func() {
		cancel()
		<-s.cron.Stop().Done()
		s.logger.Printf("scheduler: stopped")
	}
}

// PurgeResetTokens clears every reset token that is past its expiry
func (s *TokenCleanupScheduler) PurgeResetTokens(ctx context.Context) (int64, error) {
	return s.adminRepo.PurgeExpiredResetTokens(ctx, utils.UTCNow())
}

// ExpireActivationTokens clears activation tokens of invites older than the activation TTL
func (s *TokenCleanupScheduler) ExpireActivationTokens(ctx context.Context) (int64, error) {
	return s.adminRepo.ExpireStaleActivationTokens(ctx, utils.UTCNowAdd(-s.activationTTL))
}

func (s *TokenCleanupScheduler) runPurgeResetTokens() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	n, err := s.PurgeResetTokens(ctx)
	if err != nil {
		s.logger.Printf("scheduler: purge reset tokens failed: %v", err)
		return
	}
	if n > 0 {
		s.logger.Printf("scheduler: purged %d expired reset tokens", n)
	}
}

func (s *TokenCleanupScheduler) runExpireActivationTokens() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	n, err := s.ExpireActivationTokens(ctx)
	if err != nil {
		s.logger.Printf("scheduler: expire activation tokens failed: %v", err)
		return
	}
	if n > 0 {
		s.logger.Printf("scheduler: expired %d stale activation tokens", n)
	}
}
