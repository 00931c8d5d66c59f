// Package paper turns the flat question sequence from the content backend
// into ordered marking sections and drives diagram attachment for the
// answer key.
package paper

import (
	"github.com/prashnalabs/papergen-backend/internal/i18n"
	"github.com/prashnalabs/papergen-backend/internal/model"
)

// typeSections is the closed tag → section table. Tags outside it fall back
// to the marks heuristic in sectionFor.
var typeSections = map[model.QuestionType]model.SectionID{
	model.QuestionTypeMCQ:        model.SectionA,
	model.QuestionTypeFillBlank:  model.SectionA,
	model.QuestionTypeFillBlanks: model.SectionA,
	model.QuestionTypeTrueFalse:  model.SectionA,
	model.QuestionTypeObjective:  model.SectionA,

	model.QuestionTypeShort:     model.SectionB,
	model.QuestionTypeVSAQ:      model.SectionB,
	model.QuestionTypeVeryShort: model.SectionB,
	model.QuestionTypeAtiLaghu:  model.SectionB,

	model.QuestionTypeLong:      model.SectionC,
	model.QuestionTypeLaghu:     model.SectionC,
	model.QuestionTypeDirgha:    model.SectionC,
	model.QuestionTypeDiagram:   model.SectionC,
	model.QuestionTypeHOTS:      model.SectionC,
	model.QuestionTypeCaseStudy: model.SectionC,

	model.QuestionTypeVeryLong: model.SectionD,
	model.QuestionTypeNibandh:  model.SectionD,
	model.QuestionTypeEssay:    model.SectionD,
}

// sectionFor classifies a single question. An explicit section override wins
// outright; then the type table; then the marks heuristic for unknown tags.
func sectionFor(q model.Question) model.SectionID {
	switch q.ExplicitSection {
	case model.SectionA, model.SectionB, model.SectionC, model.SectionD:
		return q.ExplicitSection
	}
	if id, ok := typeSections[q.Type]; ok {
		return id
	}
	switch {
	case q.Marks <= 1:
		return model.SectionA
	case q.Marks <= 2:
		return model.SectionB
	case q.Marks <= 4:
		return model.SectionC
	default:
		return model.SectionD
	}
}

// Classify partitions questions into marking sections, emitted in fixed
// A→B→C→D order with empty sections omitted. Global numbering is contiguous
// across the whole paper: each emitted section numbers its questions from a
// running offset, so sum(TotalMarks) always equals the input marks total and
// numbers run 1..len(questions) with no gaps.
func Classify(questions []model.Question, lang model.Language) []model.Section {
	type indexed struct {
		q   model.Question
		src int
	}
	buckets := make(map[model.SectionID][]indexed, len(model.SectionOrder))
	for i, q := range questions {
		id := sectionFor(q)
		buckets[id] = append(buckets[id], indexed{q: q, src: i})
	}

	sections := make([]model.Section, 0, len(model.SectionOrder))
	offset := 0
	for _, id := range model.SectionOrder {
		bucket := buckets[id]
		if len(bucket) == 0 {
			continue
		}

		numbered := make([]model.NumberedQuestion, len(bucket))
		total := 0.0
		for i, item := range bucket {
			numbered[i] = model.NumberedQuestion{
				Question:     item.q,
				GlobalNumber: offset + i + 1,
				SourceIndex:  item.src,
			}
			total += item.q.Marks
		}
		offset += len(bucket)

		sections = append(sections, model.Section{
			ID:         id,
			Label:      i18n.SectionLabel(id, lang),
			Name:       i18n.SectionName(id, lang),
			Questions:  numbered,
			TotalMarks: total,
		})
	}
	return sections
}

// TotalMarks sums the marks of all emitted sections.
func TotalMarks(sections []model.Section) float64 {
	total := 0.0
	for _, s := range sections {
		total += s.TotalMarks
	}
	return total
}

// Flatten rebuilds the original flat question sequence from classified
// sections, positioning each question at its SourceIndex. Answer entries
// index into this sequence via QuestionIndex.
func Flatten(sections []model.Section) []model.Question {
	count := 0
	for _, s := range sections {
		count += len(s.Questions)
	}
	questions := make([]model.Question, count)
	for _, s := range sections {
		for _, nq := range s.Questions {
			if nq.SourceIndex >= 0 && nq.SourceIndex < count {
				questions[nq.SourceIndex] = nq.Question
			}
		}
	}
	return questions
}
