package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prashnalabs/papergen-backend/internal/config"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/paper"
	"github.com/prashnalabs/papergen-backend/internal/repository"
	"github.com/prashnalabs/papergen-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	DiagramPollTimeout = 1 * time.Second
)

// progressPayload is the wire form published to the paper's progress
// channel. Consumers compare RunID against the paper's current run token and
// drop anything stale.
type progressPayload struct {
	Type           string             `json:"type"` // "progress" | "complete"
	RunID          string             `json:"run_id"`
	Current        int                `json:"current"`
	Total          int                `json:"total"`
	CompletedEntry *model.AnswerEntry `json:"completed_entry,omitempty"`
}

// paperStore is the slice of the repository the worker needs.
type paperStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Paper, error)
	SetAnswerImage(ctx context.Context, id uuid.UUID, questionIndex int, asset model.ImageAsset) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaperStatus) error
}

// runBroker reads a paper's current run token and publishes progress.
type runBroker interface {
	CurrentRun(ctx context.Context, paperID string) (string, error)
	Publish(ctx context.Context, channel string, payload []byte) error
}

type redisRunBroker struct {
	rdb *redis.Client
}

func (b *redisRunBroker) CurrentRun(ctx context.Context, paperID string) (string, error) {
	return b.rdb.Get(ctx, config.CacheKey.PaperDiagramRunKey(paperID)).Result()
}

func (b *redisRunBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.rdb.Publish(ctx, channel, payload).Err()
}

// DiagramWorker consumes diagram jobs from the Redis queue and drives the
// orchestrator for each one. Jobs run one at a time; within a job the
// orchestrator itself serializes the per-entry image requests.
type DiagramWorker struct {
	store  paperStore
	rdb    *redis.Client
	broker runBroker
	orch   *paper.Orchestrator
	log    zerolog.Logger
}

func NewDiagramWorker(repo *repository.PaperRepository, rdb *redis.Client, orch *paper.Orchestrator, log zerolog.Logger) *DiagramWorker {
	return &DiagramWorker{
		store:  repo,
		rdb:    rdb,
		broker: &redisRunBroker{rdb: rdb},
		orch:   orch,
		log:    log.With().Str("component", "diagram_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop
// ----------------------------------------------------------------

func (w *DiagramWorker) Start(ctx context.Context) {
	w.log.Info().Msg("DiagramWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, DiagramPollTimeout, config.WorkerKey.DiagramJobsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var job service.DiagramJob
			if err := json.Unmarshal([]byte(item[1]), &job); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			w.process(ctx, job)
		}
	}
}

// ----------------------------------------------------------------
// Single run
// ----------------------------------------------------------------

func (w *DiagramWorker) process(ctx context.Context, job service.DiagramJob) {
	paperID, err := uuid.Parse(job.PaperID)
	if err != nil {
		w.log.Error().Err(err).Str("paper_id", job.PaperID).Msg("Invalid paper id in job")
		return
	}

	p, err := w.store.GetByID(ctx, paperID)
	if err != nil {
		w.log.Error().Err(err).Str("paper_id", job.PaperID).Msg("Failed to load paper for diagram run")
		return
	}

	runLog := w.log.With().
		Str("paper_id", job.PaperID).
		Str("run_id", job.RunID).
		Logger()
	runLog.Info().Msg("Diagram run processing")

	questions := paper.Flatten(p.Sections)
	channel := config.CacheKey.PaperProgressChannel(job.PaperID)

	attempted := 0
	for event := range w.orch.Run(ctx, questions, p.Answers, p.Subject) {
		attempted = event.Current

		// A newer run supersedes this one: stop writing results, keep
		// draining so in-flight work finishes cleanly.
		if !w.isCurrentRun(ctx, job) {
			runLog.Debug().Msg("Run superseded, dropping event")
			continue
		}

		if event.CompletedEntry != nil && event.CompletedEntry.ImageAsset != nil {
			if err := w.store.SetAnswerImage(ctx, paperID, event.CompletedEntry.QuestionIndex, *event.CompletedEntry.ImageAsset); err != nil {
				runLog.Error().Err(err).Int("question_index", event.CompletedEntry.QuestionIndex).Msg("Failed to persist image")
			}
		}

		w.publish(ctx, channel, progressPayload{
			Type:           "progress",
			RunID:          job.RunID,
			Current:        event.Current,
			Total:          event.Total,
			CompletedEntry: event.CompletedEntry,
		})
	}

	if !w.isCurrentRun(ctx, job) {
		return
	}

	if err := w.store.UpdateStatus(ctx, paperID, model.PaperStatusDiagramsDone); err != nil {
		runLog.Warn().Err(err).Msg("Failed to update paper status")
	}

	w.publish(ctx, channel, progressPayload{
		Type:    "complete",
		RunID:   job.RunID,
		Current: attempted,
		Total:   attempted,
	})
	runLog.Info().Int("attempted", attempted).Msg("Diagram run complete")
}

// isCurrentRun reports whether job still owns the paper's run token.
func (w *DiagramWorker) isCurrentRun(ctx context.Context, job service.DiagramJob) bool {
	current, err := w.broker.CurrentRun(ctx, job.PaperID)
	if err != nil {
		return false
	}
	return current == job.RunID
}

func (w *DiagramWorker) publish(ctx context.Context, channel string, payload progressPayload) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := w.broker.Publish(ctx, channel, data); err != nil {
		w.log.Warn().Err(err).Str("channel", channel).Msg("Failed to publish progress")
	}
}
