package model

import "fmt"

// Language selects which side of the bilingual content tables is served.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageHindi   Language = "hindi"
)

// Board identifies the examining authority whose syllabus a paper follows.
type Board string

const (
	BoardCBSE  Board = "CBSE"
	BoardICSE  Board = "ICSE"
	BoardNCERT Board = "NCERT"
	BoardUP    Board = "UP Board"
	BoardBihar Board = "Bihar Board"
)

// StateBoards lists boards served by state-level chapter endpoints.
// Every other board goes through the national endpoint first.
var StateBoards = map[Board]bool{
	BoardUP:    true,
	BoardBihar: true,
}

// Boards is the fixed set offered to the UI, in display order.
var Boards = []Board{BoardCBSE, BoardICSE, BoardNCERT, BoardUP, BoardBihar}

// Chapter is one syllabus chapter. Order within a subject is significant and
// reflects the official syllabus sequence. Immutable once produced.
type Chapter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChapterID derives a stable positional id for sources that carry none.
func ChapterID(position int) string {
	return fmt.Sprintf("ch-%02d", position+1)
}

// ChaptersFromNames wraps an ordered name list into Chapters with
// position-derived ids.
func ChaptersFromNames(names []string) []Chapter {
	chapters := make([]Chapter, len(names))
	for i, name := range names {
		chapters[i] = Chapter{ID: ChapterID(i), Name: name}
	}
	return chapters
}

// ResolutionSource tags which provider in the fallback chain produced a
// chapter list. Diagnostics only, never surfaced as an error.
type ResolutionSource string

const (
	SourceCurated    ResolutionSource = "curated_2025"
	SourceRemote     ResolutionSource = "remote_provider"
	SourceLocalBoard ResolutionSource = "local_board_table"
	SourceLocalCBSE  ResolutionSource = "local_cbse_fallback"
	SourceLocalNCERT ResolutionSource = "local_ncert_fallback"
	SourceEmpty      ResolutionSource = "empty"
)

// ResolutionRequest carries one chapter-list resolution. Generation is a
// monotonically increasing token minted on every input change; a result whose
// generation no longer matches the latest token is discarded, never applied.
type ResolutionRequest struct {
	Board      Board    `json:"board"`
	ClassName  string   `json:"class_name"`
	Subject    string   `json:"subject"`
	Language   Language `json:"language"`
	Generation int64    `json:"generation"`
}

// ResolutionResult is the outcome of one resolution. An empty chapter list
// with SourceEmpty is a valid, displayable state, not a failure.
type ResolutionResult struct {
	Chapters []Chapter        `json:"chapters"`
	Source   ResolutionSource `json:"source"`
}
