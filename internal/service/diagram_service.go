package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prashnalabs/papergen-backend/internal/config"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/paper"
	"github.com/prashnalabs/papergen-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain Errors
var (
	ErrNoDiagramEntries = errors.New("paper has no diagram-requiring entries")
)

// DiagramJob is the queue payload handed to the diagram worker.
type DiagramJob struct {
	PaperID string `json:"paper_id"`
	RunID   string `json:"run_id"`
}

// DiagramService starts diagram runs. Execution happens in the background
// worker; this service only mints the run token, records it as the paper's
// current run and enqueues the job. Starting a new run supersedes the
// previous token, so events from an older run are dropped by the worker.
type DiagramService struct {
	repo *repository.PaperRepository
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewDiagramService creates a new DiagramService.
func NewDiagramService(repo *repository.PaperRepository, rdb *redis.Client, log zerolog.Logger) *DiagramService {
	return &DiagramService{
		repo: repo,
		rdb:  rdb,
		log:  log.With().Str("component", "diagram_service").Logger(),
	}
}

// StartRun begins diagram attachment for a paper. Returns the run id and the
// number of entries that will be attempted.
func (s *DiagramService) StartRun(ctx context.Context, paperID uuid.UUID) (uuid.UUID, int, error) {
	p, err := s.repo.GetByID(ctx, paperID)
	if err != nil {
		return uuid.Nil, 0, err
	}

	questions := paper.Flatten(p.Sections)
	selected := paper.SelectEntries(questions, p.Answers)
	if len(selected) == 0 {
		return uuid.Nil, 0, ErrNoDiagramEntries
	}

	runID := uuid.New()
	runKey := config.CacheKey.PaperDiagramRunKey(paperID.String())
	if err := s.rdb.Set(ctx, runKey, runID.String(), 0).Err(); err != nil {
		return uuid.Nil, 0, fmt.Errorf("record run token: %w", err)
	}

	job, _ := json.Marshal(DiagramJob{PaperID: paperID.String(), RunID: runID.String()})
	if err := s.rdb.RPush(ctx, config.WorkerKey.DiagramJobsQueue, job).Err(); err != nil {
		return uuid.Nil, 0, fmt.Errorf("enqueue diagram job: %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, paperID, model.PaperStatusDiagramsRunning); err != nil {
		s.log.Warn().Err(err).Str("paper_id", paperID.String()).Msg("Failed to update paper status")
	}

	s.log.Info().
		Str("paper_id", paperID.String()).
		Str("run_id", runID.String()).
		Int("total", len(selected)).
		Msg("Diagram run started")
	return runID, len(selected), nil
}
