package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"altscore/internal/config"
	"altscore/internal/domain"
	"altscore/internal/enrichment"
	"altscore/internal/income"
	"altscore/internal/scheduler"
	"altscore/internal/scoring"
	"altscore/internal/storage"
	"altscore/internal/webhook"
)

// Service orchestrates transaction fetching, scoring, income verification,
// persistence, and webhook delivery.
type Service struct {
	scheduler     *scheduler.Scheduler
	source        enrichment.TransactionSource
	scorer        *scoring.Engine
	verifier      *income.Engine
	scores        storage.ScoreStore
	verifications storage.VerificationStore
	notifier      webhook.Notifier
	logger        zerolog.Logger

	includeAlt bool
	batchSize  int
	locker     storage.AdvisoryLocker
	lockKey    int64
}

// ScoreOutcome bundles the two records produced for one user.
type ScoreOutcome struct {
	Score        *domain.CreditScore
	Verification *domain.IncomeVerification
}

// New constructs the scoring service.
func New(cfg *config.Config, sched *scheduler.Scheduler, source enrichment.TransactionSource, scorer *scoring.Engine, verifier *income.Engine, scores storage.ScoreStore, verifications storage.VerificationStore, notifier webhook.Notifier, logger zerolog.Logger) *Service {
	var locker storage.AdvisoryLocker
	if l, ok := scores.(storage.AdvisoryLocker); ok {
		locker = l
	}

	return &Service{
		scheduler:     sched,
		source:        source,
		scorer:        scorer,
		verifier:      verifier,
		scores:        scores,
		verifications: verifications,
		notifier:      notifier,
		logger:        logger.With().Str("component", "service").Logger(),
		includeAlt:    cfg.Scoring.IncludeAlternativeData,
		batchSize:     cfg.Scheduler.BatchSize,
		locker:        locker,
		lockKey:       cfg.Scheduler.AdvisoryLockKey,
	}
}

// Run begins the aligned re-scoring loop.
func (s *Service) Run(ctx context.Context) error {
	if s.scheduler == nil {
		return fmt.Errorf("scheduler not configured")
	}
	return s.scheduler.Run(ctx, s.ProcessTick)
}

// ProcessTick executes one re-scoring round: users whose latest score has
// expired are scored again. The advisory lock keeps concurrent instances
// from double-processing.
func (s *Service) ProcessTick(ctx context.Context, tick time.Time) error {
	unlock, proceed, err := s.acquireLock(ctx)
	if err != nil {
		return err
	}
	if !proceed {
		s.logger.Debug().Time("tick", tick).Msg("skip round because advisory lock held elsewhere")
		return nil
	}
	if unlock != nil {
		defer unlock()
	}

	if s.scores == nil {
		return errors.New("score store not configured")
	}

	expired, err := s.scores.ListExpiredUsers(ctx, tick, s.batchSize)
	if err != nil {
		return fmt.Errorf("list expired users: %w", err)
	}
	if len(expired) == 0 {
		s.logger.Debug().Time("tick", tick).Msg("no expired scores")
		return nil
	}

	var failed int
	for _, userID := range expired {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := s.ScoreUser(ctx, userID, domain.IdentityHints{}, s.includeAlt, nil); err != nil {
			failed++
			s.logger.Error().Err(err).Str("user_id", userID).Msg("re-scoring failed")
		}
	}

	s.logger.Info().Time("tick", tick).
		Int("processed", len(expired)-failed).
		Int("failed", failed).
		Msg("re-scoring round complete")
	return nil
}

// ScoreUser runs the full pipeline for one user: fetch enriched
// transactions, compute the credit score and income verification, persist
// both, and emit webhooks. Persistence and webhook failures are logged,
// not propagated; the computed records are still returned.
func (s *Service) ScoreUser(ctx context.Context, userID string, hints domain.IdentityHints, includeAlt bool, monthlyExpenses *decimal.Decimal) (*ScoreOutcome, error) {
	if s.source == nil {
		return nil, errors.New("transaction source not configured")
	}

	txs, err := s.source.FetchTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	score, err := s.scorer.Score(ctx, scoring.Request{
		UserID:                 userID,
		Transactions:           txs,
		Hints:                  hints,
		IncludeAlternativeData: includeAlt,
	})
	if err != nil {
		return nil, fmt.Errorf("compute credit score: %w", err)
	}

	verification := s.verifier.Verify(userID, txs, income.Options{MonthlyExpenses: monthlyExpenses})

	s.persist(ctx, score, verification)
	s.emit(ctx, score, verification)

	return &ScoreOutcome{Score: score, Verification: verification}, nil
}

func (s *Service) persist(ctx context.Context, score *domain.CreditScore, verification *domain.IncomeVerification) {
	if s.scores != nil {
		record, err := storage.NewScoreRecord(score)
		if err == nil {
			_, err = s.scores.InsertScore(ctx, record)
		}
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", score.UserID).Msg("failed to persist credit score")
		}
	}

	if s.verifications != nil {
		record, err := storage.NewVerificationRecord(verification)
		if err == nil {
			_, err = s.verifications.InsertVerification(ctx, record)
		}
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", verification.UserID).Msg("failed to persist income verification")
		}
	}
}

func (s *Service) emit(ctx context.Context, score *domain.CreditScore, verification *domain.IncomeVerification) {
	if s.notifier == nil {
		return
	}

	events := []webhook.Event{
		{
			EventType: webhook.EventScoreCompleted,
			RequestID: score.RequestID,
			UserID:    score.UserID,
			EmittedAt: score.ScoredAt,
			Data:      score,
		},
		{
			EventType: webhook.EventIncomeVerified,
			RequestID: verification.RequestID,
			UserID:    verification.UserID,
			EmittedAt: verification.VerifiedAt,
			Data:      verification,
		},
	}
	for _, event := range events {
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.logger.Error().Err(err).
				Str("event_type", event.EventType).
				Str("user_id", event.UserID).
				Msg("failed to deliver webhook")
		}
	}
}

func (s *Service) acquireLock(ctx context.Context) (func(), bool, error) {
	if s.lockKey == 0 || s.locker == nil {
		return nil, true, nil
	}
	unlock, acquired, err := s.locker.TryAdvisoryLock(ctx, s.lockKey)
	if err != nil {
		return nil, false, fmt.Errorf("acquire advisory lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}
	return unlock, true, nil
}
