package paper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

// fakeGenerator records call order and fails on the configured question
// indices.
type fakeGenerator struct {
	failOn map[int]bool
	calls  []int
	active atomic.Int32
	maxAct atomic.Int32
	delay  time.Duration
}

func (f *fakeGenerator) GenerateDiagram(_ context.Context, _ model.Question, entry model.AnswerEntry, _ string) (model.ImageAsset, error) {
	cur := f.active.Add(1)
	if cur > f.maxAct.Load() {
		f.maxAct.Store(cur)
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.active.Add(-1)

	f.calls = append(f.calls, entry.QuestionIndex)
	if f.failOn[entry.QuestionIndex] {
		return model.ImageAsset{}, errors.New("upstream refused")
	}
	return model.ImageAsset{URL: "https://cdn.example.com/d.png", MimeType: "image/png"}, nil
}

func diagramFixture() ([]model.Question, []model.AnswerEntry) {
	questions := []model.Question{
		{Text: "label the heart", Type: model.QuestionTypeDiagram, Marks: 4},
		{Text: "define osmosis", Type: model.QuestionTypeShort, Marks: 2},
		{Text: "draw a neuron", Type: model.QuestionTypeDiagram, Marks: 4},
		{Text: "explain photosynthesis", Type: model.QuestionTypeLong, Marks: 4},
		{Text: "sketch the water cycle", Type: model.QuestionTypeLong, Marks: 4},
	}
	entries := []model.AnswerEntry{
		{QuestionIndex: 0, Marks: 4},
		{QuestionIndex: 1, Marks: 2},
		{QuestionIndex: 2, Marks: 4},
		{QuestionIndex: 3, Marks: 4},
		{QuestionIndex: 4, Marks: 4, DiagramRequired: true},
	}
	return questions, entries
}

func TestSelectEntries(t *testing.T) {
	questions, entries := diagramFixture()

	selected := SelectEntries(questions, entries)

	// Indices 0 and 2 are diagram-type questions; index 4 carries the flag.
	want := []int{0, 2, 4}
	if len(selected) != len(want) {
		t.Fatalf("expected %d selected entries, got %d", len(want), len(selected))
	}
	for i, idx := range want {
		if selected[i] != idx {
			t.Errorf("position %d: expected entry index %d, got %d", i, idx, selected[i])
		}
	}
}

func TestRunFailureDoesNotStopRun(t *testing.T) {
	questions, entries := diagramFixture()
	gen := &fakeGenerator{failOn: map[int]bool{2: true}}
	orch := NewOrchestrator(gen, time.Second, zerolog.Nop())

	var events []model.ProgressEvent
	for ev := range orch.Run(context.Background(), questions, entries, "Science") {
		events = append(events, ev)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if len(gen.calls) != 3 {
		t.Fatalf("expected 3 generation attempts, got %d", len(gen.calls))
	}

	// Current is monotonic over attempts, failures included.
	for i, ev := range events {
		if ev.Current != i+1 {
			t.Errorf("event %d: expected current %d, got %d", i, i+1, ev.Current)
		}
		if ev.Total != 3 {
			t.Errorf("event %d: expected total 3, got %d", i, ev.Total)
		}
	}

	// The failed item (question index 2) yields an event with no entry.
	successes := 0
	for _, ev := range events {
		if ev.CompletedEntry == nil {
			continue
		}
		successes++
		if ev.CompletedEntry.ImageAsset == nil {
			t.Errorf("question %d: completed entry missing image asset", ev.CompletedEntry.QuestionIndex)
		}
		if ev.CompletedEntry.QuestionIndex == 2 {
			t.Error("failed item reported as completed")
		}
	}
	if successes != 2 {
		t.Errorf("expected 2 successes, got %d", successes)
	}
}

func TestRunIsSequential(t *testing.T) {
	questions, entries := diagramFixture()
	gen := &fakeGenerator{delay: 10 * time.Millisecond}
	orch := NewOrchestrator(gen, time.Second, zerolog.Nop())

	for range orch.Run(context.Background(), questions, entries, "Science") {
	}

	if got := gen.maxAct.Load(); got != 1 {
		t.Errorf("expected at most 1 in-flight generation, observed %d", got)
	}

	// Paper order preserved.
	want := []int{0, 2, 4}
	for i, idx := range want {
		if gen.calls[i] != idx {
			t.Errorf("call %d: expected question index %d, got %d", i, idx, gen.calls[i])
		}
	}
}

func TestRunNoSelectedEntries(t *testing.T) {
	questions := []model.Question{{Text: "define osmosis", Type: model.QuestionTypeShort, Marks: 2}}
	entries := []model.AnswerEntry{{QuestionIndex: 0, Marks: 2}}

	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, time.Second, zerolog.Nop())

	count := 0
	for range orch.Run(context.Background(), questions, entries, "Science") {
		count++
	}

	if count != 0 {
		t.Errorf("expected no events, got %d", count)
	}
	if len(gen.calls) != 0 {
		t.Errorf("expected no generation attempts, got %d", len(gen.calls))
	}
}

func TestRunCancelledContext(t *testing.T) {
	questions, entries := diagramFixture()
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count := 0
	for range orch.Run(ctx, questions, entries, "Science") {
		count++
	}

	if count != 0 {
		t.Errorf("expected no events after cancellation, got %d", count)
	}
}
