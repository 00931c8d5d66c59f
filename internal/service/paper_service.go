package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prashnalabs/papergen-backend/internal/contentgen"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/paper"
	"github.com/prashnalabs/papergen-backend/internal/repository"
	"github.com/prashnalabs/papergen-backend/internal/response"
	"github.com/rs/zerolog"
)

// Domain Errors
var (
	ErrGenerationFailed = errors.New("paper generation failed")
	ErrUnknownBoard     = errors.New("unknown board")
)

// PaperService composes, persists and serves generated papers. Whole-paper
// generation is the single pipeline step whose failure surfaces to the user;
// everything downstream degrades quietly.
type PaperService struct {
	repo    *repository.PaperRepository
	content *contentgen.Client
	log     zerolog.Logger
}

// NewPaperService creates a new PaperService.
func NewPaperService(repo *repository.PaperRepository, content *contentgen.Client, log zerolog.Logger) *PaperService {
	return &PaperService{
		repo:    repo,
		content: content,
		log:     log.With().Str("component", "paper_service").Logger(),
	}
}

// Generate runs the composition pipeline: content backend → section
// classification → persistence. The returned error wraps
// ErrGenerationFailed with the upstream message when one is available.
func (s *PaperService) Generate(ctx context.Context, req model.GeneratePaperRequest) (*model.Paper, error) {
	board := model.Board(req.Board)
	if !knownBoard(board) {
		return nil, ErrUnknownBoard
	}
	lang := model.Language(req.Language)

	content, err := s.content.GenerateExamContent(ctx, contentgen.GenerateRequest{
		Board:         req.Board,
		ClassName:     req.ClassName,
		Subject:       req.Subject,
		Chapters:      req.Chapters,
		QuestionTypes: req.QuestionTypes,
		MarksConfig:   req.MarksConfig,
		Language:      req.Language,
		Difficulty:    req.Difficulty,
	})
	if err != nil {
		s.log.Error().Err(err).Str("subject", req.Subject).Msg("Content generation failed")
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	sections := paper.Classify(content.Questions, lang)

	// Normalize the diagram flag so downstream selection only has to look
	// at the entry, not the question it came from.
	answers := make([]model.AnswerEntry, len(content.Answers))
	for i, e := range content.Answers {
		var qt model.QuestionType
		if e.QuestionIndex >= 0 && e.QuestionIndex < len(content.Questions) {
			qt = content.Questions[e.QuestionIndex].Type
		}
		e.DiagramRequired = model.NeedsDiagram(e, qt)
		answers[i] = e
	}

	p := &model.Paper{
		ID:         uuid.New(),
		Board:      board,
		ClassName:  req.ClassName,
		Subject:    req.Subject,
		Language:   lang,
		Chapters:   model.ChaptersFromNames(req.Chapters),
		Sections:   sections,
		Answers:    answers,
		TotalMarks: paper.TotalMarks(sections),
		Status:     model.PaperStatusReady,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("persist paper: %w", err)
	}

	s.log.Info().
		Str("paper_id", p.ID.String()).
		Str("subject", p.Subject).
		Int("sections", len(sections)).
		Float64("total_marks", p.TotalMarks).
		Msg("Paper generated")
	return p, nil
}

// GetByID retrieves a paper by its UUID.
func (s *PaperService) GetByID(ctx context.Context, id uuid.UUID) (*model.Paper, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves papers with clamped pagination.
func (s *PaperService) List(ctx context.Context, page, perPage int) ([]model.Paper, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	papers, total, err := s.repo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if papers == nil {
		papers = []model.Paper{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return papers, pagination, nil
}

// AnswerKey returns the classified sections paired with their answer data,
// ready to render as an answer key.
func (s *PaperService) AnswerKey(ctx context.Context, id uuid.UUID) ([]model.Section, []model.AnswerEntry, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p.Sections, p.Answers, nil
}

// Delete removes a paper.
func (s *PaperService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func knownBoard(board model.Board) bool {
	for _, b := range model.Boards {
		if b == board {
			return true
		}
	}
	return false
}
