package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prashnalabs/papergen-backend/internal/config"
	"github.com/prashnalabs/papergen-backend/internal/repository"
	"github.com/prashnalabs/papergen-backend/internal/response"
	"github.com/prashnalabs/papergen-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keepAliveInterval = 30 * time.Second
)

// DiagramHandler starts diagram runs and streams their progress over SSE.
type DiagramHandler struct {
	diagramService *service.DiagramService
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewDiagramHandler creates a new DiagramHandler.
func NewDiagramHandler(diagramService *service.DiagramService, rdb *redis.Client, log zerolog.Logger) *DiagramHandler {
	return &DiagramHandler{
		diagramService: diagramService,
		rdb:            rdb,
		log:            log.With().Str("component", "diagram_handler").Logger(),
	}
}

// StartDiagramRun godoc
// POST /api/v1/papers/:id/diagrams
// Begins background diagram attachment for every answer entry that needs
// one. Starting again supersedes the previous run.
func (h *DiagramHandler) StartDiagramRun(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	runID, total, err := h.diagramService.StartRun(c.Request.Context(), paperID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPaperNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoDiagramEntries):
			response.Fail(c, http.StatusBadRequest, response.ErrNoDiagramEntries)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"run_id": runID,
		"total":  total,
	})
}

// DiagramProgressSSE godoc
// GET /api/v1/papers/:id/diagrams/progress
// Streams run progress. Payloads published by the worker are forwarded raw;
// each carries its run_id so clients can drop frames from a superseded run.
func (h *DiagramHandler) DiagramProgressSSE(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	reqCtx := c.Request.Context()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	channelName := config.CacheKey.PaperProgressChannel(paperID.String())
	pubsub := h.rdb.Subscribe(reqCtx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()

	keepAliveTicker := time.NewTicker(keepAliveInterval)
	defer keepAliveTicker.Stop()

	h.log.Info().Str("paper_id", paperID.String()).Msg("Client attached to diagram progress SSE")

	pingPayload := []byte(`{"type":"ping"}`)

	for {
		select {
		case <-reqCtx.Done():
			h.log.Info().Str("paper_id", paperID.String()).Msg("Client disconnected from diagram progress SSE")
			return

		case msg := <-ch:
			// Forward raw JSON directly — no deserialization needed
			c.Writer.Write([]byte("data: "))
			c.Writer.Write([]byte(msg.Payload))
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()

		case <-keepAliveTicker.C:
			c.Writer.Write([]byte("data: "))
			c.Writer.Write(pingPayload)
			c.Writer.Write([]byte("\n\n"))
			c.Writer.Flush()
		}
	}
}
