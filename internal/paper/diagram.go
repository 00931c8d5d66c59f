package paper

import (
	"context"
	"time"

	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

// DiagramGenerator produces one image for one answer entry. Implemented by
// the content backend client; faked in tests.
type DiagramGenerator interface {
	GenerateDiagram(ctx context.Context, question model.Question, entry model.AnswerEntry, subject string) (model.ImageAsset, error)
}

// Orchestrator attaches generated diagrams to the answer entries that need
// them. Requests run strictly sequentially — each attempt's completion,
// success or failure, triggers the next — which bounds provider load and
// keeps progress counting monotonic. A single failure is logged and
// swallowed; the run completes once every selected entry has been attempted
// exactly once. No retries.
type Orchestrator struct {
	gen     DiagramGenerator
	timeout time.Duration
	log     zerolog.Logger
}

// NewOrchestrator creates an orchestrator with a per-item timeout.
func NewOrchestrator(gen DiagramGenerator, timeout time.Duration, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		gen:     gen,
		timeout: timeout,
		log:     log.With().Str("component", "diagram_orchestrator").Logger(),
	}
}

// SelectEntries returns the indices (into entries) of answer entries that
// require a diagram, in paper order. questions is the parallel flat question
// sequence; entries index into it via QuestionIndex.
func SelectEntries(questions []model.Question, entries []model.AnswerEntry) []int {
	var selected []int
	for i, e := range entries {
		var qt model.QuestionType
		if e.QuestionIndex >= 0 && e.QuestionIndex < len(questions) {
			qt = questions[e.QuestionIndex].Type
		}
		if model.NeedsDiagram(e, qt) {
			selected = append(selected, i)
		}
	}
	return selected
}

// Run processes the diagram-requiring entries one at a time and yields one
// ProgressEvent per attempt on the returned channel. The channel is closed
// when every selected entry has been attempted or ctx is cancelled.
// CompletedEntry is set only on success, with ImageAsset populated.
func (o *Orchestrator) Run(ctx context.Context, questions []model.Question, entries []model.AnswerEntry, subject string) <-chan model.ProgressEvent {
	selected := SelectEntries(questions, entries)
	events := make(chan model.ProgressEvent, len(selected))

	go func() {
		defer close(events)
		total := len(selected)

		for n, idx := range selected {
			if ctx.Err() != nil {
				return
			}

			entry := entries[idx]
			var question model.Question
			if entry.QuestionIndex >= 0 && entry.QuestionIndex < len(questions) {
				question = questions[entry.QuestionIndex]
			}

			itemCtx, cancel := context.WithTimeout(ctx, o.timeout)
			asset, err := o.gen.GenerateDiagram(itemCtx, question, entry, subject)
			cancel()

			event := model.ProgressEvent{Current: n + 1, Total: total}
			if err != nil {
				o.log.Warn().
					Err(err).
					Int("question_index", entry.QuestionIndex).
					Str("subject", subject).
					Msg("Diagram generation failed, continuing")
			} else {
				entry.ImageAsset = &asset
				event.CompletedEntry = &entry
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events
}
