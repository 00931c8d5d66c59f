package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prashnalabs/papergen-backend/internal/model"
	"github.com/prashnalabs/papergen-backend/internal/repository"
	"github.com/prashnalabs/papergen-backend/internal/response"
	"github.com/prashnalabs/papergen-backend/internal/service"
	"github.com/prashnalabs/papergen-backend/internal/validator"
)

// PaperHandler handles paper composition endpoints.
type PaperHandler struct {
	paperService *service.PaperService
}

// NewPaperHandler creates a new PaperHandler.
func NewPaperHandler(paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{paperService: paperService}
}

// GeneratePaper godoc
// POST /api/v1/papers
// Composes a new paper: upstream generation, section classification,
// persistence. The one endpoint whose failure is user-visible.
func (h *PaperHandler) GeneratePaper(c *gin.Context) {
	var req model.GeneratePaperRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	paper, err := h.paperService.Generate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownBoard):
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownBoard)
		case errors.Is(err, service.ErrGenerationFailed):
			// Forward the upstream message when the backend sent one.
			msg := strings.TrimPrefix(err.Error(), service.ErrGenerationFailed.Error()+": ")
			response.FailWithMessage(c, http.StatusBadGateway, response.ErrGenerationFailed, msg)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"paper": paper})
}

// ListPapers godoc
// GET /api/v1/papers
func (h *PaperHandler) ListPapers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	papers, pagination, err := h.paperService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"papers": papers}, pagination)
}

// GetPaper godoc
// GET /api/v1/papers/:id
func (h *PaperHandler) GetPaper(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	paper, err := h.paperService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paper": paper})
}

// GetAnswerKey godoc
// GET /api/v1/papers/:id/answer-key
// The classified sections paired with their answer entries.
func (h *PaperHandler) GetAnswerKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	sections, answers, err := h.paperService.AnswerKey(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"sections": sections,
		"answers":  answers,
	})
}

// DeletePaper godoc
// DELETE /api/v1/papers/:id
func (h *PaperHandler) DeletePaper(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.paperService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPaperNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "paper deleted"})
}
