package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audioscribe/internal/gateway/apierrors"
)

// ErrorHandler recovers panics and renders them as structured API errors.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(requestIDKey)

		var apiErr *apierrors.APIError

		switch err := recovered.(type) {
		case *apierrors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			logger.Error("internal server error",
				zap.String("error", err.Error()),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = &apierrors.APIError{
				Kind:      apierrors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		default:
			logger.Error("unknown panic",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = &apierrors.APIError{
				Kind:      apierrors.KindInternal,
				Message:   "Internal server error",
				RequestID: requestID,
			}
		}

		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError is a helper for handlers to return errors consistently.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if apiErr, ok := err.(*apierrors.APIError); ok {
		apiErr.RequestID = c.GetString(requestIDKey)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
		return
	}

	// Non-API errors bubble up to the recovery middleware.
	panic(err)
}
