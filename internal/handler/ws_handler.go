package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prashnalabs/papergen-backend/internal/config"
	ws "github.com/prashnalabs/papergen-backend/internal/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler pushes diagram progress over WebSocket for clients that prefer
// a socket to an EventSource.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// PaperProgressStream godoc
// WS /ws/v1/papers/:id/progress
// Server-push only: subscribes to the paper's progress channel and forwards
// every published payload, typed as a progress or complete frame.
func (h *WSHandler) PaperProgressStream(c *gin.Context) {
	paperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paper ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("paper_id", paperID.String()).Logger()
	wsLog.Info().Msg("Client connected")

	reqCtx := c.Request.Context()

	channelName := config.CacheKey.PaperProgressChannel(paperID.String())
	pubsub := h.rdb.Subscribe(reqCtx, channelName)
	defer pubsub.Close()

	ch := pubsub.Channel()

	pingTicker := time.NewTicker(keepAliveInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-reqCtx.Done():
			wsLog.Debug().Msg("Connection context done")
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, ws.FrameFor(msg.Payload)); err != nil {
				wsLog.Debug().Err(err).Msg("Write failed, closing")
				return
			}

		case <-pingTicker.C:
			if err := ws.WriteTyped(conn, ws.PingFrame{Event: ws.EventPing}); err != nil {
				wsLog.Debug().Msg("Ping failed, closing")
				return
			}
		}
	}
}
