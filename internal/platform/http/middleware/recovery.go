package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/platform/http/envelope"
)

// Recovery converts a panic into the generic 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		envelope.InternalError(c, fmt.Errorf("panic: %v", rec))
	})
}
