package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashnalabs/papergen-backend/internal/i18n"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/response"
)

// ReferenceHandler serves the static board and subject lists the paper
// composer UI is built from.
type ReferenceHandler struct{}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

// ListBoards godoc
// GET /api/v1/boards
func (h *ReferenceHandler) ListBoards(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"boards": model.Boards})
}

// ListSubjects godoc
// GET /api/v1/subjects?language=
// Subject display names in the requested language.
func (h *ReferenceHandler) ListSubjects(c *gin.Context) {
	lang := model.Language(c.DefaultQuery("language", string(model.LanguageEnglish)))
	if lang != model.LanguageEnglish && lang != model.LanguageHindi {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": i18n.Subjects(lang)})
}
