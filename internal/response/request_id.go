package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the Gin context key the response metadata builder
// reads the request id from.
const ContextKeyRequestID = "request_id"

// RequestIDMiddleware tags every request with an id that ends up in the
// envelope's metadata and in the X-Request-ID response header, so a client
// report can be matched to server logs. A client-supplied X-Request-ID is
// kept; otherwise a fresh UUID is assigned.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, reqID)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}
