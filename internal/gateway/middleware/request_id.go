package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey is the context key the other middleware read the id from.
const requestIDKey = "request_id"

// RequestID tags every request with an id for log correlation. A
// caller-supplied X-Request-ID is kept; otherwise a uuid is generated. The
// id is stored on the context and echoed back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
