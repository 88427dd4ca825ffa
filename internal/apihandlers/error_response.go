package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error responses use a flat envelope for compatibility with existing
// clients of the service.
// Example: { "error": "Text required" }

func JSONError(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, gin.H{"error": msg})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, msg)
}
