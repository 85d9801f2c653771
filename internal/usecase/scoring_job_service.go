package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/npl-fantasy/internal/domain/match"
	"github.com/riskibarqy/npl-fantasy/internal/platform/logging"
	"github.com/riskibarqy/npl-fantasy/internal/platform/tracing"
)

const (
	ScoreMatchJobPath = "/v1/internal/jobs/score-match"
	maxScoringDelay   = 7 * 24 * time.Hour
)

// JobPublisher schedules an HTTP callback into this service.
type JobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type ScoreMatchJob struct {
	MatchID int64 `json:"match_id"`
}

type ScheduledJob struct {
	MatchID         int64     `json:"match_id"`
	Path            string    `json:"path"`
	RunAt           time.Time `json:"run_at"`
	DeduplicationID string    `json:"deduplication_id"`
}

// ScoringJobService defers ScoreMatch to a job queue so a match can be
// scored once its scorecard is final without an admin waiting on it.
type ScoringJobService struct {
	matchRepo match.Repository
	publisher JobPublisher
	logger    *logging.Logger
	now       func() time.Time
}

func NewScoringJobService(matchRepo match.Repository, publisher JobPublisher, logger *logging.Logger) *ScoringJobService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringJobService{
		matchRepo: matchRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ScoringJobService) ScheduleScoreMatch(ctx context.Context, matchID int64, delay time.Duration) (ScheduledJob, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringJobService.ScheduleScoreMatch", tracing.MatchID(matchID))
	defer span.End()

	if s.publisher == nil {
		return ScheduledJob{}, fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
	}
	if delay < 0 || delay > maxScoringDelay {
		return ScheduledJob{}, fmt.Errorf("%w: delay must be between 0 and %s", ErrInvalidInput, maxScoringDelay)
	}
	if _, err := getMatch(ctx, s.matchRepo, matchID); err != nil {
		return ScheduledJob{}, err
	}

	runAt := s.now().UTC().Add(delay).Truncate(time.Second)
	job := ScheduledJob{
		MatchID:         matchID,
		Path:            ScoreMatchJobPath,
		RunAt:           runAt,
		DeduplicationID: fmt.Sprintf("score-match-%d-%d", matchID, runAt.Unix()),
	}

	if err := s.publisher.Enqueue(ctx, job.Path, ScoreMatchJob{MatchID: matchID}, delay, job.DeduplicationID); err != nil {
		return ScheduledJob{}, fmt.Errorf("%w: enqueue score job: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "score job scheduled", "match_id", matchID, "run_at", runAt)
	return job, nil
}
