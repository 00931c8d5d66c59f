package model

// NumberedQuestion is a Question plus its paper-wide number. Numbering is
// contiguous across sections and never restarts mid-paper. SourceIndex is
// the question's position in the flat generated sequence, which answer
// entries reference via QuestionIndex.
type NumberedQuestion struct {
	Question
	GlobalNumber int `json:"global_number"`
	SourceIndex  int `json:"source_index"`
}

// Section is one ordered marking section of a paper. Sections are created
// lazily: a section with zero questions never appears in the output.
type Section struct {
	ID         SectionID          `json:"id"`
	Label      string             `json:"label"`
	Name       string             `json:"name"`
	Questions  []NumberedQuestion `json:"questions"`
	TotalMarks float64            `json:"total_marks"`
}
