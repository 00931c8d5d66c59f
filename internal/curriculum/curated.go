package curriculum

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/prashnalabs/papergen-backend/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed curated.yaml
var curatedYAML []byte

type curatedFile struct {
	Classes map[string]map[string]map[string][]string `yaml:"classes"`
}

// CuratedProvider serves the hand-maintained bilingual syllabus tables.
// It is the fastest path in the chain and the only provider that carries
// Hindi chapter names directly.
type CuratedProvider struct {
	// class → subject → language → ordered chapter names
	classes map[string]map[string]map[string][]string
}

// NewCuratedProvider decodes the embedded YAML tables once at startup.
func NewCuratedProvider() (*CuratedProvider, error) {
	var f curatedFile
	if err := yaml.Unmarshal(curatedYAML, &f); err != nil {
		return nil, fmt.Errorf("decode curated tables: %w", err)
	}
	return &CuratedProvider{classes: f.Classes}, nil
}

func (p *CuratedProvider) Source() model.ResolutionSource {
	return model.SourceCurated
}

func (p *CuratedProvider) Lookup(_ context.Context, q Query) ([]model.Chapter, error) {
	subjects, ok := p.classes[q.ClassName]
	if !ok {
		return nil, nil
	}
	languages, ok := subjects[q.Subject]
	if !ok {
		return nil, nil
	}
	names := languages[string(q.Language)]
	if len(names) == 0 {
		return nil, nil
	}
	return model.ChaptersFromNames(names), nil
}
