package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key the response envelope reads the
// request ID from.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every request with a UUID so a paper's journey can
// be traced from the API through the queue to the diagram worker. An inbound
// X-Request-ID is honored only when it is itself a UUID; anything else is
// replaced rather than echoed into logs.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
