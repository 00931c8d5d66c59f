package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ChapterResolutionKey returns the cache key for a resolved chapter list.
func (r *CacheKeyStruct) ChapterResolutionKey(board, className, subject, language string) string {
	return fmt.Sprintf("chapters:%s:%s:%s:%s", board, className, subject, language)
}

// PaperDiagramRunKey returns the key holding the current diagram run id for
// a paper. Events from any other run id are stale and must be dropped.
func (r *CacheKeyStruct) PaperDiagramRunKey(paperID string) string {
	return fmt.Sprintf("paper:%s:diagram_run", paperID)
}

// PaperProgressChannel returns the Redis PubSub channel carrying diagram
// progress events for a paper.
func (r *CacheKeyStruct) PaperProgressChannel(paperID string) string {
	return fmt.Sprintf("paper:%s:progress", paperID)
}

var CacheKey = NewCacheKeyStruct()
