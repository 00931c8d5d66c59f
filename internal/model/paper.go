package model

import (
	"time"

	"github.com/google/uuid"
)

// PaperStatus tracks the diagram-attachment lifecycle of a stored paper.
type PaperStatus string

const (
	PaperStatusReady           PaperStatus = "READY"
	PaperStatusDiagramsRunning PaperStatus = "DIAGRAMS_RUNNING"
	PaperStatusDiagramsDone    PaperStatus = "DIAGRAMS_DONE"
)

// Paper is a generated, classified exam paper as persisted and served.
type Paper struct {
	ID         uuid.UUID     `json:"id"`
	Board      Board         `json:"board"`
	ClassName  string        `json:"class_name"`
	Subject    string        `json:"subject"`
	Language   Language      `json:"language"`
	Chapters   []Chapter     `json:"chapters"`
	Sections   []Section     `json:"sections"`
	Answers    []AnswerEntry `json:"answers"`
	TotalMarks float64       `json:"total_marks"`
	Status     PaperStatus   `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// MarksConfig maps a question type tag to the marks each question of that
// type carries, as requested from the content backend.
type MarksConfig map[string]float64

// GeneratePaperRequest is the payload for composing a new paper.
type GeneratePaperRequest struct {
	Board         string      `json:"board" binding:"required"`
	ClassName     string      `json:"class_name" binding:"required"`
	Subject       string      `json:"subject" binding:"required"`
	Chapters      []string    `json:"chapters" binding:"required,min=1"`
	QuestionTypes []string    `json:"question_types" binding:"required,min=1"`
	MarksConfig   MarksConfig `json:"marks_config" binding:"required"`
	Language      string      `json:"language" binding:"required,oneof=english hindi"`
	Difficulty    string      `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}
