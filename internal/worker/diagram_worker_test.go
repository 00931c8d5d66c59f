package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/paper"
	"github.com/prashnalabs/papergen-backend/internal/service"
	"github.com/rs/zerolog"
)

// fakeStore serves one in-memory paper and records mutations.
type fakeStore struct {
	paper       *model.Paper
	images      map[int]model.ImageAsset
	statuses    []model.PaperStatus
	imageWrites int
}

func (s *fakeStore) GetByID(_ context.Context, _ uuid.UUID) (*model.Paper, error) {
	return s.paper, nil
}

func (s *fakeStore) SetAnswerImage(_ context.Context, _ uuid.UUID, questionIndex int, asset model.ImageAsset) error {
	if s.images == nil {
		s.images = map[int]model.ImageAsset{}
	}
	s.images[questionIndex] = asset
	s.imageWrites++
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, _ uuid.UUID, status model.PaperStatus) error {
	s.statuses = append(s.statuses, status)
	return nil
}

// fakeBroker holds a fixed current-run token and records publishes.
type fakeBroker struct {
	currentRun string
	published  []progressPayload
}

func (b *fakeBroker) CurrentRun(_ context.Context, _ string) (string, error) {
	return b.currentRun, nil
}

func (b *fakeBroker) Publish(_ context.Context, _ string, payload []byte) error {
	var p progressPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	b.published = append(b.published, p)
	return nil
}

// stubGenerator always succeeds.
type stubGenerator struct {
	calls int
}

func (g *stubGenerator) GenerateDiagram(_ context.Context, _ model.Question, _ model.AnswerEntry, _ string) (model.ImageAsset, error) {
	g.calls++
	return model.ImageAsset{URL: "https://cdn.example.com/d.png"}, nil
}

func workerFixture(runID string, gen paper.DiagramGenerator, broker runBroker) (*DiagramWorker, *fakeStore, service.DiagramJob) {
	questions := []model.Question{
		{Text: "label the heart", Type: model.QuestionTypeDiagram, Marks: 4},
		{Text: "draw a neuron", Type: model.QuestionTypeDiagram, Marks: 4},
	}
	sections := paper.Classify(questions, model.LanguageEnglish)

	p := &model.Paper{
		ID:       uuid.New(),
		Subject:  "Science",
		Sections: sections,
		Answers: []model.AnswerEntry{
			{QuestionIndex: 0, Marks: 4, DiagramRequired: true},
			{QuestionIndex: 1, Marks: 4, DiagramRequired: true},
		},
		Status: model.PaperStatusDiagramsRunning,
	}

	store := &fakeStore{paper: p}
	worker := &DiagramWorker{
		store:  store,
		broker: broker,
		orch:   paper.NewOrchestrator(gen, time.Second, zerolog.Nop()),
		log:    zerolog.Nop(),
	}
	job := service.DiagramJob{PaperID: p.ID.String(), RunID: runID}
	return worker, store, job
}

func TestProcessCurrentRunPersistsAndPublishes(t *testing.T) {
	runID := uuid.New().String()
	broker := &fakeBroker{currentRun: runID}
	gen := &stubGenerator{}
	worker, store, job := workerFixture(runID, gen, broker)

	worker.process(context.Background(), job)

	if store.imageWrites != 2 {
		t.Errorf("expected 2 image writes, got %d", store.imageWrites)
	}
	if len(store.statuses) != 1 || store.statuses[0] != model.PaperStatusDiagramsDone {
		t.Errorf("expected terminal DIAGRAMS_DONE status, got %v", store.statuses)
	}

	// Two progress events plus the terminal complete event.
	if len(broker.published) != 3 {
		t.Fatalf("expected 3 published payloads, got %d", len(broker.published))
	}
	for i := 0; i < 2; i++ {
		if broker.published[i].Type != "progress" || broker.published[i].RunID != runID {
			t.Errorf("payload %d: unexpected %+v", i, broker.published[i])
		}
	}
	last := broker.published[2]
	if last.Type != "complete" || last.Current != 2 || last.Total != 2 {
		t.Errorf("unexpected terminal payload %+v", last)
	}
}

func TestProcessSupersededRunWritesNothing(t *testing.T) {
	// The paper's run token already belongs to a newer run.
	broker := &fakeBroker{currentRun: uuid.New().String()}
	gen := &stubGenerator{}
	worker, store, job := workerFixture(uuid.New().String(), gen, broker)

	worker.process(context.Background(), job)

	// The run drains fully but none of its effects land.
	if gen.calls != 2 {
		t.Errorf("expected 2 generation attempts, got %d", gen.calls)
	}
	if store.imageWrites != 0 {
		t.Errorf("superseded run persisted %d images", store.imageWrites)
	}
	if len(store.statuses) != 0 {
		t.Errorf("superseded run updated status: %v", store.statuses)
	}
	if len(broker.published) != 0 {
		t.Errorf("superseded run published %d payloads", len(broker.published))
	}
}
