// Package contentgen is the HTTP client for the external AI content backend:
// whole-paper generation and per-answer diagram images. This service never
// produces questions itself.
package contentgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

// GenerateRequest is the upstream payload for composing a full paper.
type GenerateRequest struct {
	Board         string            `json:"board"`
	ClassName     string            `json:"class_name"`
	Subject       string            `json:"subject"`
	Chapters      []string          `json:"chapters"`
	QuestionTypes []string          `json:"question_types"`
	MarksConfig   model.MarksConfig `json:"marks_config"`
	Language      string            `json:"language"`
	Difficulty    string            `json:"difficulty,omitempty"`
}

// GeneratedContent is the upstream response: the flat question sequence plus
// parallel answer data.
type GeneratedContent struct {
	Questions []model.Question    `json:"questions"`
	Answers   []model.AnswerEntry `json:"answers"`
}

// Client talks to the content backend. It carries the upstream's
// human-readable error message when one is available, so handler code can
// surface it on whole-paper failures.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// New creates a content backend client.
func New(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		log:     log.With().Str("component", "contentgen_client").Logger(),
	}
}

// GenerateExamContent asks the backend for a complete question/answer set.
func (c *Client) GenerateExamContent(ctx context.Context, req GenerateRequest) (*GeneratedContent, error) {
	var content GeneratedContent
	if err := c.post(ctx, "/v1/exam-content", req, &content); err != nil {
		return nil, err
	}
	if len(content.Questions) == 0 {
		return nil, fmt.Errorf("content backend returned no questions")
	}
	return &content, nil
}

// GenerateDiagram asks the backend for one diagram image. Implements
// paper.DiagramGenerator.
func (c *Client) GenerateDiagram(ctx context.Context, question model.Question, entry model.AnswerEntry, subject string) (model.ImageAsset, error) {
	payload := map[string]interface{}{
		"question":      question.Text,
		"question_type": question.Type,
		"answer":        entry.ModelAnswer,
		"subject":       subject,
	}

	var asset model.ImageAsset
	if err := c.post(ctx, "/v1/diagrams", payload, &asset); err != nil {
		return model.ImageAsset{}, err
	}
	if asset.URL == "" {
		return model.ImageAsset{}, fmt.Errorf("content backend returned no image URL")
	}
	return asset, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call content backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Surface the upstream message when the backend sends one.
		var upstream struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&upstream); decodeErr == nil && upstream.Error.Message != "" {
			return fmt.Errorf("content backend: %s", upstream.Error.Message)
		}
		return fmt.Errorf("content backend: unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
