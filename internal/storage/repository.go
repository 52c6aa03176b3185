package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotConfigured indicates the storage pool was not initialised.
	ErrNotConfigured = errors.New("storage: pool not configured")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("storage: record not found")
)

const (
	insertScoreSQL = `INSERT INTO credit_scores (
        user_id,
        request_id,
        score,
        score_band,
        risk_grade,
        percentile,
        default_probability,
        model_version,
        model_confidence,
        payload,
        scored_at,
        expires_at
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
    )
    RETURNING id;`

	latestScoreSQL = `SELECT
        id, user_id, request_id, score, score_band, risk_grade, percentile,
        default_probability, model_version, model_confidence, payload,
        scored_at, expires_at
    FROM credit_scores
    WHERE user_id = $1
    ORDER BY scored_at DESC
    LIMIT 1;`

	listScoreHistorySQL = `SELECT
        id, user_id, request_id, score, score_band, risk_grade, percentile,
        default_probability, model_version, model_confidence, payload,
        scored_at, expires_at
    FROM credit_scores
    WHERE user_id = $1
      AND scored_at >= $2
      AND scored_at < $3
    ORDER BY scored_at;`

	listRecentScoresSQL = `SELECT
        id, user_id, request_id, score, score_band, risk_grade, percentile,
        default_probability, model_version, model_confidence, payload,
        scored_at, expires_at
    FROM credit_scores
    ORDER BY scored_at DESC
    LIMIT $1;`

	listExpiredUsersSQL = `SELECT user_id FROM (
        SELECT DISTINCT ON (user_id) user_id, expires_at
        FROM credit_scores
        ORDER BY user_id, scored_at DESC
    ) latest
    WHERE latest.expires_at < $1
    ORDER BY latest.expires_at
    LIMIT $2;`

	insertVerificationSQL = `INSERT INTO income_verifications (
        user_id,
        request_id,
        estimated_monthly_income,
        income_stability,
        income_trend,
        payload,
        verified_at
    ) VALUES (
        $1,$2,$3,$4,$5,$6,$7
    )
    RETURNING id;`

	latestVerificationSQL = `SELECT
        id, user_id, request_id, estimated_monthly_income, income_stability,
        income_trend, payload, verified_at
    FROM income_verifications
    WHERE user_id = $1
    ORDER BY verified_at DESC
    LIMIT 1;`

	tryAdvisoryLockSQL = `SELECT pg_try_advisory_lock($1);`
	advisoryUnlockSQL  = `SELECT pg_advisory_unlock($1);`
)

// ScoreStore defines operations over persisted credit scores.
type ScoreStore interface {
	InsertScore(ctx context.Context, record ScoreRecord) (int64, error)
	LatestScore(ctx context.Context, userID string) (ScoreRecord, error)
	ListScoreHistory(ctx context.Context, userID string, from, to time.Time) ([]ScoreRecord, error)
	ListRecentScores(ctx context.Context, limit int) ([]ScoreRecord, error)
	ListExpiredUsers(ctx context.Context, asOf time.Time, limit int) ([]string, error)
}

// VerificationStore defines operations over persisted income verifications.
type VerificationStore interface {
	InsertVerification(ctx context.Context, record VerificationRecord) (int64, error)
	LatestVerification(ctx context.Context, userID string) (VerificationRecord, error)
}

// AdvisoryLocker exposes advisory lock helpers for the re-scoring loop.
type AdvisoryLocker interface {
	TryAdvisoryLock(ctx context.Context, key int64) (unlock func(), acquired bool, err error)
}

// Store aggregates access to credit scores and income verifications.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wires a pgx pool into a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

func (s *Store) getPool() (*pgxpool.Pool, error) {
	if s == nil || s.pool == nil {
		return nil, ErrNotConfigured
	}
	return s.pool, nil
}

// TryAdvisoryLock attempts to acquire a postgres advisory lock and returns a release func.
func (s *Store) TryAdvisoryLock(ctx context.Context, key int64) (func(), bool, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, false, err
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire connection: %w", err)
	}

	var acquired bool
	if err := conn.QueryRow(ctx, tryAdvisoryLockSQL, key).Scan(&acquired); err != nil {
		conn.Release()
		return nil, false, fmt.Errorf("try advisory lock: %w", err)
	}
	if !acquired {
		conn.Release()
		return nil, false, nil
	}

	unlock := func() {
		ctxUnlock, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := conn.Exec(ctxUnlock, advisoryUnlockSQL, key); err != nil {
			// unlock best effort; log omitted in storage package
		}
		conn.Release()
	}
	return unlock, true, nil
}

// InsertScore persists a scoring run.
func (s *Store) InsertScore(ctx context.Context, record ScoreRecord) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	var id int64
	scanErr := pool.QueryRow(ctx, insertScoreSQL,
		record.UserID,
		record.RequestID,
		record.Score,
		string(record.Band),
		string(record.RiskGrade),
		record.Percentile,
		record.DefaultProbability,
		record.ModelVersion,
		record.ModelConfidence,
		[]byte(record.Payload),
		record.ScoredAt,
		record.ExpiresAt,
	).Scan(&id)
	if scanErr != nil {
		return 0, fmt.Errorf("insert credit score: %w", scanErr)
	}
	return id, nil
}

// LatestScore returns the most recent score for a user.
func (s *Store) LatestScore(ctx context.Context, userID string) (ScoreRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return ScoreRecord{}, err
	}

	rows, queryErr := pool.Query(ctx, latestScoreSQL, userID)
	if queryErr != nil {
		return ScoreRecord{}, fmt.Errorf("latest score: %w", queryErr)
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return ScoreRecord{}, rows.Err()
		}
		return ScoreRecord{}, ErrNotFound
	}
	return scanScoreRecord(rows)
}

// ListScoreHistory lists a user's scores within a time window.
func (s *Store) ListScoreHistory(ctx context.Context, userID string, from, to time.Time) ([]ScoreRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listScoreHistorySQL, userID, from, to)
	if queryErr != nil {
		return nil, fmt.Errorf("list score history: %w", queryErr)
	}
	defer rows.Close()

	return collectScoreRecords(rows, 0)
}

// ListRecentScores lists the most recent scores across all users.
func (s *Store) ListRecentScores(ctx context.Context, limit int) ([]ScoreRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listRecentScoresSQL, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list recent scores: %w", queryErr)
	}
	defer rows.Close()

	return collectScoreRecords(rows, limit)
}

// ListExpiredUsers returns users whose latest score has expired as of asOf.
func (s *Store) ListExpiredUsers(ctx context.Context, asOf time.Time, limit int) ([]string, error) {
	pool, err := s.getPool()
	if err != nil {
		return nil, err
	}

	rows, queryErr := pool.Query(ctx, listExpiredUsersSQL, asOf, limit)
	if queryErr != nil {
		return nil, fmt.Errorf("list expired users: %w", queryErr)
	}
	defer rows.Close()

	users := make([]string, 0, limit)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		users = append(users, userID)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return users, nil
}

// InsertVerification persists an income verification run.
func (s *Store) InsertVerification(ctx context.Context, record VerificationRecord) (int64, error) {
	pool, err := s.getPool()
	if err != nil {
		return 0, err
	}

	var id int64
	scanErr := pool.QueryRow(ctx, insertVerificationSQL,
		record.UserID,
		record.RequestID,
		record.EstimatedMonthlyIncome.String(),
		string(record.Stability),
		string(record.Trend),
		[]byte(record.Payload),
		record.VerifiedAt,
	).Scan(&id)
	if scanErr != nil {
		return 0, fmt.Errorf("insert income verification: %w", scanErr)
	}
	return id, nil
}

// LatestVerification returns the most recent verification for a user.
func (s *Store) LatestVerification(ctx context.Context, userID string) (VerificationRecord, error) {
	pool, err := s.getPool()
	if err != nil {
		return VerificationRecord{}, err
	}

	rows, queryErr := pool.Query(ctx, latestVerificationSQL, userID)
	if queryErr != nil {
		return VerificationRecord{}, fmt.Errorf("latest verification: %w", queryErr)
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return VerificationRecord{}, rows.Err()
		}
		return VerificationRecord{}, ErrNotFound
	}

	var (
		rec       VerificationRecord
		incomeStr string
	)
	if err := rows.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.RequestID,
		&incomeStr,
		&rec.Stability,
		&rec.Trend,
		&rec.Payload,
		&rec.VerifiedAt,
	); err != nil {
		return VerificationRecord{}, err
	}

	income, convErr := decimal.NewFromString(incomeStr)
	if convErr != nil {
		return VerificationRecord{}, fmt.Errorf("parse estimated income: %w", convErr)
	}
	rec.EstimatedMonthlyIncome = income
	return rec, nil
}

func collectScoreRecords(rows pgx.Rows, capacity int) ([]ScoreRecord, error) {
	records := make([]ScoreRecord, 0, capacity)
	for rows.Next() {
		record, scanErr := scanScoreRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, record)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

func scanScoreRecord(rows pgx.Rows) (ScoreRecord, error) {
	var rec ScoreRecord
	if err := rows.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.RequestID,
		&rec.Score,
		&rec.Band,
		&rec.RiskGrade,
		&rec.Percentile,
		&rec.DefaultProbability,
		&rec.ModelVersion,
		&rec.ModelConfidence,
		&rec.Payload,
		&rec.ScoredAt,
		&rec.ExpiresAt,
	); err != nil {
		return ScoreRecord{}, err
	}
	return rec, nil
}
