// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/platform/http/envelope"
	"studyflow_backend/internal/platform/logger"
)

const (
	MsgHealthy  = "Serviço operacional."
	pingTimeout = 2 * time.Second
)

// Pinger checks a dependency the service cannot run without.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a HealthHandler that pings db on every request.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health はデータベースに到達できれば200、できなければ503を返します。
// HEAD はボディなし、OPTIONS は204です。キャッシュは明示的に防止します。
func (h *HealthHandler) Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()
	err := h.db.Ping(ctx)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("health check failed", "error", err)
	}

	switch {
	case c.Request.Method == http.MethodHead && err != nil:
		c.AbortWithStatus(http.StatusServiceUnavailable)
	case c.Request.Method == http.MethodHead:
		c.Status(http.StatusOK)
	case err != nil:
		envelope.Unavailable(c, "")
	default:
		envelope.OK(c, MsgHealthy, nil)
	}
}
