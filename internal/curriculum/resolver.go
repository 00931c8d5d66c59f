package curriculum

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/prashnalabs/papergen-backend/internal/i18n"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

// Resolver runs the provider chain under generation-token discipline: every
// input change mints a new token, and a resolution whose token no longer
// matches the latest one is discarded without touching the applied state.
// This is the only cancellation mechanism — in-flight lookups are never
// aborted, their results just stop mattering.
type Resolver struct {
	chain *Chain
	log   zerolog.Logger

	gen atomic.Int64

	mu      sync.Mutex
	current model.ResolutionResult
}

// NewResolver creates a resolver over the given chain.
func NewResolver(chain *Chain, log zerolog.Logger) *Resolver {
	return &Resolver{
		chain: chain,
		log:   log.With().Str("component", "curriculum_resolver").Logger(),
		current: model.ResolutionResult{
			Chapters: []model.Chapter{},
			Source:   model.SourceEmpty,
		},
	}
}

// NewRequest mints a resolution request for the given selection, superseding
// every request minted before it.
func (r *Resolver) NewRequest(board model.Board, className, subject string, lang model.Language) model.ResolutionRequest {
	return model.ResolutionRequest{
		Board:      board,
		ClassName:  className,
		Subject:    subject,
		Language:   lang,
		Generation: r.gen.Add(1),
	}
}

// Resolve runs the chain for req. The returned bool reports whether the
// result was applied: false means a newer request was minted while this one
// was in flight and the result was silently discarded.
func (r *Resolver) Resolve(ctx context.Context, req model.ResolutionRequest) (model.ResolutionResult, bool) {
	q := Query{
		Board:     req.Board,
		ClassName: req.ClassName,
		// Subject keys in provider tables are canonical English; a Hindi UI
		// sends the projected token back through the projector first.
		Subject:  i18n.ToLanguage(req.Subject, model.LanguageEnglish),
		Language: req.Language,
	}

	result := r.chain.Lookup(ctx, q)

	// The staleness check and the state write must be one atomic step:
	// checked outside the lock, a newer request could mint and apply in
	// between, and this stale result would clobber it.
	r.mu.Lock()
	if req.Generation != r.gen.Load() {
		latest := r.gen.Load()
		r.mu.Unlock()
		r.log.Debug().
			Int64("generation", req.Generation).
			Int64("latest", latest).
			Msg("Discarding stale resolution")
		return result, false
	}
	r.current = result
	r.mu.Unlock()

	r.log.Debug().
		Str("board", string(req.Board)).
		Str("class", req.ClassName).
		Str("subject", req.Subject).
		Str("source", string(result.Source)).
		Int("chapters", len(result.Chapters)).
		Msg("Resolution applied")

	return result, true
}

// Current returns the last applied resolution.
func (r *Resolver) Current() model.ResolutionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
