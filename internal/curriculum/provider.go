// Package curriculum resolves the authoritative chapter list for a
// (board, class, subject, language) selection from an ordered chain of
// competing data sources.
package curriculum

import (
	"context"

	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/rs/zerolog"
)

// Query is the provider-facing slice of a resolution request. Subject is
// always the canonical English token; providers never see the Hindi form.
type Query struct {
	Board     model.Board
	ClassName string
	Subject   string
	Language  model.Language
}

// Provider is one chapter data source. Returning an empty slice means
// "no data here", which is not an error; errors are reserved for transport
// faults and are treated by the chain exactly like empty results.
type Provider interface {
	Source() model.ResolutionSource
	Lookup(ctx context.Context, q Query) ([]model.Chapter, error)
}

// Chain tries providers strictly in order and returns the first non-empty
// chapter list. Provider errors and timeouts fall through to the next
// provider; exhausting the chain yields SourceEmpty, a valid result.
type Chain struct {
	providers []Provider
	log       zerolog.Logger
}

// NewChain builds a chain over the given providers in precedence order.
func NewChain(log zerolog.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		log:       log.With().Str("component", "curriculum_chain").Logger(),
	}
}

// Lookup runs the chain for one query.
func (c *Chain) Lookup(ctx context.Context, q Query) model.ResolutionResult {
	for _, p := range c.providers {
		chapters, err := p.Lookup(ctx, q)
		if err != nil {
			c.log.Debug().
				Err(err).
				Str("source", string(p.Source())).
				Str("subject", q.Subject).
				Msg("Provider failed, falling through")
			continue
		}
		if len(chapters) == 0 {
			continue
		}
		return model.ResolutionResult{Chapters: chapters, Source: p.Source()}
	}
	return model.ResolutionResult{Chapters: []model.Chapter{}, Source: model.SourceEmpty}
}
