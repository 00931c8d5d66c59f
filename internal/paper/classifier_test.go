package paper

import (
	"testing"

	"github.com/prashnalabs/papergen-backend/internal/model"
)

func q(t model.QuestionType, marks float64) model.Question {
	return model.Question{Text: "q", Type: t, Marks: marks}
}

func TestClassifyExampleScenario(t *testing.T) {
	questions := []model.Question{
		q(model.QuestionTypeMCQ, 1),
		q(model.QuestionTypeMCQ, 1),
		q(model.QuestionTypeShort, 2),
		q(model.QuestionTypeLong, 4),
	}

	sections := Classify(questions, model.LanguageEnglish)

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	wantIDs := []model.SectionID{model.SectionA, model.SectionB, model.SectionC}
	wantCounts := []int{2, 1, 1}
	wantMarks := []float64{2, 2, 4}

	for i, s := range sections {
		if s.ID != wantIDs[i] {
			t.Errorf("section %d: expected id %s, got %s", i, wantIDs[i], s.ID)
		}
		if len(s.Questions) != wantCounts[i] {
			t.Errorf("section %s: expected %d questions, got %d", s.ID, wantCounts[i], len(s.Questions))
		}
		if s.TotalMarks != wantMarks[i] {
			t.Errorf("section %s: expected %v marks, got %v", s.ID, wantMarks[i], s.TotalMarks)
		}
	}

	// Numbering: A gets 1-2, B gets 3, C gets 4.
	wantNumbers := [][]int{{1, 2}, {3}, {4}}
	for i, s := range sections {
		for j, nq := range s.Questions {
			if nq.GlobalNumber != wantNumbers[i][j] {
				t.Errorf("section %s question %d: expected number %d, got %d", s.ID, j, wantNumbers[i][j], nq.GlobalNumber)
			}
		}
	}

	if total := TotalMarks(sections); total != 8 {
		t.Errorf("expected total marks 8, got %v", total)
	}
}

func TestClassifyTypeFamilies(t *testing.T) {
	tests := []struct {
		qType model.QuestionType
		want  model.SectionID
	}{
		{model.QuestionTypeMCQ, model.SectionA},
		{model.QuestionTypeFillBlank, model.SectionA},
		{model.QuestionTypeFillBlanks, model.SectionA},
		{model.QuestionTypeTrueFalse, model.SectionA},
		{model.QuestionTypeObjective, model.SectionA},
		{model.QuestionTypeShort, model.SectionB},
		{model.QuestionTypeVSAQ, model.SectionB},
		{model.QuestionTypeVeryShort, model.SectionB},
		{model.QuestionTypeAtiLaghu, model.SectionB},
		{model.QuestionTypeLong, model.SectionC},
		{model.QuestionTypeLaghu, model.SectionC},
		{model.QuestionTypeDirgha, model.SectionC},
		{model.QuestionTypeDiagram, model.SectionC},
		{model.QuestionTypeHOTS, model.SectionC},
		{model.QuestionTypeCaseStudy, model.SectionC},
		{model.QuestionTypeVeryLong, model.SectionD},
		{model.QuestionTypeNibandh, model.SectionD},
		{model.QuestionTypeEssay, model.SectionD},
	}

	for _, tt := range tests {
		// Marks chosen to disagree with the type mapping so the type wins.
		got := sectionFor(q(tt.qType, 100))
		if got != tt.want {
			t.Errorf("type %s: expected section %s, got %s", tt.qType, tt.want, got)
		}
	}
}

func TestClassifyMarksFallback(t *testing.T) {
	tests := []struct {
		marks float64
		want  model.SectionID
	}{
		{0.5, model.SectionA},
		{1, model.SectionA},
		{1.5, model.SectionB},
		{2, model.SectionB},
		{3, model.SectionC},
		{4, model.SectionC},
		{5, model.SectionD},
		{8, model.SectionD},
	}

	for _, tt := range tests {
		got := sectionFor(q("mystery_type", tt.marks))
		if got != tt.want {
			t.Errorf("marks %v: expected section %s, got %s", tt.marks, tt.want, got)
		}
	}
}

func TestClassifyExplicitSectionWins(t *testing.T) {
	question := q(model.QuestionTypeMCQ, 1)
	question.ExplicitSection = model.SectionD

	if got := sectionFor(question); got != model.SectionD {
		t.Errorf("expected explicit section D to win over mcq, got %s", got)
	}
}

func TestClassifyEmptySectionsOmitted(t *testing.T) {
	questions := []model.Question{
		q(model.QuestionTypeMCQ, 1),
		q(model.QuestionTypeLong, 4),
	}

	sections := Classify(questions, model.LanguageEnglish)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].ID != model.SectionA || sections[1].ID != model.SectionC {
		t.Errorf("expected sections A and C, got %s and %s", sections[0].ID, sections[1].ID)
	}
}

func TestClassifyMarksConservationAndNumbering(t *testing.T) {
	questions := []model.Question{
		q(model.QuestionTypeEssay, 8),
		q(model.QuestionTypeMCQ, 1),
		q(model.QuestionTypeHOTS, 4),
		q(model.QuestionTypeTrueFalse, 1),
		q(model.QuestionTypeAtiLaghu, 2),
		q("weird", 3),
		q(model.QuestionTypeNibandh, 10),
		q(model.QuestionTypeFillBlank, 1),
	}

	inputTotal := 0.0
	for _, question := range questions {
		inputTotal += question.Marks
	}

	sections := Classify(questions, model.LanguageEnglish)

	if got := TotalMarks(sections); got != inputTotal {
		t.Errorf("marks not conserved: input %v, sections %v", inputTotal, got)
	}

	// Global numbering must be 1..N consecutive across sections.
	next := 1
	count := 0
	for _, s := range sections {
		for _, nq := range s.Questions {
			if nq.GlobalNumber != next {
				t.Errorf("expected global number %d, got %d", next, nq.GlobalNumber)
			}
			next++
			count++
		}
	}
	if count != len(questions) {
		t.Errorf("expected %d questions across sections, got %d", len(questions), count)
	}

	// Fixed emission order.
	for i := 1; i < len(sections); i++ {
		if sections[i-1].ID >= sections[i].ID {
			t.Errorf("sections out of order: %s before %s", sections[i-1].ID, sections[i].ID)
		}
	}
}

func TestClassifyHindiLabels(t *testing.T) {
	sections := Classify([]model.Question{q(model.QuestionTypeMCQ, 1)}, model.LanguageHindi)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Label != "खंड अ" {
		t.Errorf("expected Hindi label, got %q", sections[0].Label)
	}
	if sections[0].Name != "वस्तुनिष्ठ प्रश्न" {
		t.Errorf("expected Hindi name, got %q", sections[0].Name)
	}
}

func TestFlattenRestoresSourceOrder(t *testing.T) {
	questions := []model.Question{
		q(model.QuestionTypeLong, 4),
		q(model.QuestionTypeMCQ, 1),
		q(model.QuestionTypeShort, 2),
	}

	flat := Flatten(Classify(questions, model.LanguageEnglish))

	if len(flat) != len(questions) {
		t.Fatalf("expected %d questions, got %d", len(questions), len(flat))
	}
	for i, question := range questions {
		if flat[i].Type != question.Type {
			t.Errorf("position %d: expected type %s, got %s", i, question.Type, flat[i].Type)
		}
	}
}
