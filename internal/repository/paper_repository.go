package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prashnalabs/papergen-backend/internal/model"
)

// ErrPaperNotFound is returned when no paper exists for the given id.
var ErrPaperNotFound = errors.New("paper not found")

type PaperRepository struct {
	pool *pgxpool.Pool
}

func NewPaperRepository(pool *pgxpool.Pool) *PaperRepository {
	return &PaperRepository{pool: pool}
}

// Create inserts a freshly composed paper. Sections, answers and chapters are
// stored as JSONB documents; the classifier's output is the source of truth.
func (r *PaperRepository) Create(ctx context.Context, p *model.Paper) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO papers (id, board, class_name, subject, language, chapters, sections, answers, total_marks, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		p.ID, p.Board, p.ClassName, p.Subject, p.Language,
		p.Chapters, p.Sections, p.Answers, p.TotalMarks, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PaperRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Paper, error) {
	var p model.Paper
	err := r.pool.QueryRow(ctx,
		`SELECT id, board, class_name, subject, language, chapters, sections, answers, total_marks, status, created_at, updated_at
		 FROM papers WHERE id = $1`, id,
	).Scan(&p.ID, &p.Board, &p.ClassName, &p.Subject, &p.Language,
		&p.Chapters, &p.Sections, &p.Answers, &p.TotalMarks, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPaginated returns papers newest-first, without the heavy JSONB columns.
func (r *PaperRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Paper, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM papers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, board, class_name, subject, language, total_marks, status, created_at, updated_at
		 FROM papers ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var papers []model.Paper
	for rows.Next() {
		var p model.Paper
		if err := rows.Scan(&p.ID, &p.Board, &p.ClassName, &p.Subject, &p.Language,
			&p.TotalMarks, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		papers = append(papers, p)
	}
	return papers, total, rows.Err()
}

func (r *PaperRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaperStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE papers SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

// SetAnswerImage attaches a generated image to the answer entry whose
// question_index matches, rewriting the answers document in place.
func (r *PaperRepository) SetAnswerImage(ctx context.Context, id uuid.UUID, questionIndex int, asset model.ImageAsset) error {
	assetJSON, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("marshal image asset: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`UPDATE papers
		 SET answers = (
		     SELECT jsonb_agg(
		         CASE WHEN (elem->>'question_index')::int = $2
		              THEN elem || jsonb_build_object('image_asset', $3::jsonb)
		              ELSE elem
		         END)
		     FROM jsonb_array_elements(answers) AS elem
		 ),
		 updated_at = NOW()
		 WHERE id = $1`,
		id, questionIndex, assetJSON)
	return err
}

func (r *PaperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM papers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPaperNotFound
	}
	return nil
}
