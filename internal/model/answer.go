package model

// ImageAsset is a generated diagram image hosted by the content backend.
type ImageAsset struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
}

// AnswerEntry is one answer-key entry, parallel to the question at
// QuestionIndex in the flat generated sequence. ImageAsset is populated only
// after a diagram run succeeds for the entry; absence is the default and
// permanent state for entries that never required a diagram.
type AnswerEntry struct {
	QuestionIndex   int         `json:"question_index"`
	Marks           float64     `json:"marks"`
	ModelAnswer     string      `json:"model_answer"`
	Explanation     string      `json:"explanation,omitempty"`
	MarkingPoints   []string    `json:"marking_points,omitempty"`
	DiagramRequired bool        `json:"diagram_required"`
	ImageAsset      *ImageAsset `json:"image_asset,omitempty"`
}

// NeedsDiagram reports whether a diagram must be generated for the entry,
// either via the explicit flag or the question type it was derived from.
func NeedsDiagram(entry AnswerEntry, questionType QuestionType) bool {
	if entry.DiagramRequired {
		return true
	}
	switch questionType {
	case QuestionTypeDiagram, QuestionTypeDrawColor, QuestionTypeScenery:
		return true
	}
	return false
}

// ProgressEvent reports one completed diagram attempt. Current counts
// attempts, not successes, so it is monotonic even when items fail.
type ProgressEvent struct {
	Current        int          `json:"current"`
	Total          int          `json:"total"`
	CompletedEntry *AnswerEntry `json:"completed_entry,omitempty"`
}
