package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/response"
	"github.com/prashnalabs/papergen-backend/internal/service"
)

// CurriculumHandler serves chapter resolution.
type CurriculumHandler struct {
	curriculumService *service.CurriculumService
}

// NewCurriculumHandler creates a new CurriculumHandler.
func NewCurriculumHandler(curriculumService *service.CurriculumService) *CurriculumHandler {
	return &CurriculumHandler{curriculumService: curriculumService}
}

// GetChapters godoc
// GET /api/v1/chapters?board=&class=&subject=&language=
// Resolves the chapter list for a selection. An empty list with
// source "empty" is a valid answer, not an error.
func (h *CurriculumHandler) GetChapters(c *gin.Context) {
	board := model.Board(c.Query("board"))
	className := c.Query("class")
	subject := c.Query("subject")
	lang := model.Language(c.DefaultQuery("language", string(model.LanguageEnglish)))

	if board == "" || className == "" || subject == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if lang != model.LanguageEnglish && lang != model.LanguageHindi {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	result, err := h.curriculumService.ResolveChapters(c.Request.Context(), board, className, subject, lang)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"chapters": result.Chapters,
		"source":   result.Source,
	})
}
