package http

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"creator-finance/internal/apperr"
)

// respondError writes err as {"error", "message"}. Internal failures are
// logged and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	status, code := apperr.Status(err)
	if apperr.IsInternal(err) {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.AbortWithStatusJSON(status, gin.H{"error": code, "message": "Internal server error"})
		return
	}

	body := gin.H{"error": code, "message": err.Error()}
	var ib *invalidBody
	if errors.As(err, &ib) {
		body["message"] = "Invalid request body"
		body["details"] = ib.details
	}
	c.AbortWithStatusJSON(status, body)
}
