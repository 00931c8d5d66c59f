package curriculum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

// RemoteProvider queries the hosted syllabus service. Per board it tries a
// fixed candidate endpoint list strictly in order: state boards hit the
// state endpoint then the NCERT-equivalent one; national boards hit the
// national endpoint then the generic NCERT one. Each candidate gets its own
// bounded timeout, and a timeout or error counts as an empty result — the
// first candidate returning chapters wins regardless of what earlier
// candidates did.
type RemoteProvider struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	log     zerolog.Logger
}

// NewRemoteProvider builds a remote provider against the syllabus service at
// baseURL with the given per-candidate timeout.
func NewRemoteProvider(baseURL string, timeout time.Duration, log zerolog.Logger) *RemoteProvider {
	return &RemoteProvider{
		baseURL: baseURL,
		timeout: timeout,
		client:  &http.Client{},
		log:     log.With().Str("component", "remote_provider").Logger(),
	}
}

func (p *RemoteProvider) Source() model.ResolutionSource {
	return model.SourceRemote
}

func (p *RemoteProvider) Lookup(ctx context.Context, q Query) ([]model.Chapter, error) {
	for _, path := range p.candidates(q.Board) {
		chapters, err := p.fetch(ctx, path, q)
		if err != nil {
			p.log.Debug().
				Err(err).
				Str("path", path).
				Str("board", string(q.Board)).
				Msg("Candidate endpoint failed, trying next")
			continue
		}
		if len(chapters) > 0 {
			return chapters, nil
		}
	}
	return nil, nil
}

// candidates returns the endpoint paths to try, in order, for a board.
func (p *RemoteProvider) candidates(board model.Board) []string {
	if model.StateBoards[board] {
		return []string{"/v1/state-boards/chapters", "/v1/ncert/chapters"}
	}
	return []string{"/v1/boards/chapters", "/v1/ncert/chapters"}
}

func (p *RemoteProvider) fetch(ctx context.Context, path string, q Query) ([]model.Chapter, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("board", string(q.Board))
	params.Set("class", q.ClassName)
	params.Set("subject", q.Subject)
	params.Set("language", string(q.Language))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chapters: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Chapters []string `json:"chapters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode chapters: %w", err)
	}

	return model.ChaptersFromNames(body.Chapters), nil
}
