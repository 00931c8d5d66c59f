package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prashnalabs/papergen-backend/internal/config"
	"github.com/prashnalabs/papergen-backend/internal/curriculum"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CurriculumService fronts the resolver with a Redis cache. A cache hit
// short-circuits the whole provider chain; the cached entry keeps the
// original source tag so diagnostics stay truthful.
type CurriculumService struct {
	resolver *curriculum.Resolver
	rdb      *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
}

// NewCurriculumService creates a new CurriculumService.
func NewCurriculumService(resolver *curriculum.Resolver, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CurriculumService {
	return &CurriculumService{
		resolver: resolver,
		rdb:      rdb,
		ttl:      ttl,
		log:      log.With().Str("component", "curriculum_service").Logger(),
	}
}

// ResolveChapters returns the authoritative chapter list for a selection.
// An empty result is a valid outcome, served with SourceEmpty and never
// cached. Each caller gets the resolution of its own query even when a
// newer request superseded it mid-flight.
func (s *CurriculumService) ResolveChapters(ctx context.Context, board model.Board, className, subject string, lang model.Language) (model.ResolutionResult, error) {
	key := config.CacheKey.ChapterResolutionKey(string(board), className, subject, string(lang))

	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached model.ResolutionResult
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// Corrupt cache entry: drop it and resolve fresh.
		s.rdb.Del(ctx, key)
	}

	req := s.resolver.NewRequest(board, className, subject, lang)
	result, applied := s.resolver.Resolve(ctx, req)

	// A superseded resolution is still the right answer for the query that
	// produced it; staleness only gates the shared applied state and the
	// cache write. Serving anything else would hand this caller chapters
	// for a different selection.
	if applied && len(result.Chapters) > 0 {
		if data, err := json.Marshal(result); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
				s.log.Warn().Err(err).Str("key", key).Msg("Failed to cache resolution")
			}
		}
	}

	return result, nil
}
