package model

// QuestionType is the open string tag attached to each generated question.
// The content backend is free to emit tags outside this list; unrecognized
// tags fall back to a marks-based heuristic during classification.
type QuestionType string

const (
	// Objective family → Section A.
	QuestionTypeMCQ        QuestionType = "mcq"
	QuestionTypeFillBlank  QuestionType = "fill_blank"
	QuestionTypeFillBlanks QuestionType = "fill_blanks"
	QuestionTypeTrueFalse  QuestionType = "true_false"
	QuestionTypeObjective  QuestionType = "objective"

	// Short-answer family → Section B.
	QuestionTypeShort     QuestionType = "short"
	QuestionTypeVSAQ      QuestionType = "vsaq"
	QuestionTypeVeryShort QuestionType = "very_short"
	QuestionTypeAtiLaghu  QuestionType = "ati_laghu"

	// Long-answer family → Section C.
	QuestionTypeLong      QuestionType = "long"
	QuestionTypeLaghu     QuestionType = "laghu"
	QuestionTypeDirgha    QuestionType = "dirgha"
	QuestionTypeDiagram   QuestionType = "diagram"
	QuestionTypeHOTS      QuestionType = "hots"
	QuestionTypeCaseStudy QuestionType = "case_study"

	// Very-long family → Section D.
	QuestionTypeVeryLong QuestionType = "very_long"
	QuestionTypeNibandh  QuestionType = "nibandh"
	QuestionTypeEssay    QuestionType = "essay"

	// Diagram-requiring types outside the section families.
	QuestionTypeDrawColor QuestionType = "draw_color"
	QuestionTypeScenery   QuestionType = "scenery"
)

// SectionID is one of the four marking sections of a paper.
type SectionID string

const (
	SectionA SectionID = "A"
	SectionB SectionID = "B"
	SectionC SectionID = "C"
	SectionD SectionID = "D"
)

// SectionOrder is the fixed emission order for populated sections.
var SectionOrder = []SectionID{SectionA, SectionB, SectionC, SectionD}

// Question is one generated question as received from the content backend.
// Immutable input to classification.
type Question struct {
	Text            string       `json:"text"`
	Type            QuestionType `json:"type"`
	Marks           float64      `json:"marks"`
	Options         []string     `json:"options,omitempty"`
	ExplicitSection SectionID    `json:"explicit_section,omitempty"`
}
