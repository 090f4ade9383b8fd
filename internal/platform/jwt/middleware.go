package jwtmw

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/platform/http/envelope"
	"studyflow_backend/internal/platform/logger"
)

const ContextUserID = "userID"

const (
	// MsgLoginRequired は資格情報が無い場合(401)のメッセージです。
	MsgLoginRequired = "Login não detectado. Necessário passar pela etapa de login novamente."
	// MsgTokenRejected は資格情報が改ざん・期限切れの場合(403)のメッセージです。
	MsgTokenRejected = "Token manipulado. Autenticação rejeitada!"
)

// AuthRequired returns a Gin middleware that resolves the caller from the token.
// Absent credential → 401, invalid credential → 403, otherwise the user id is stored under ContextUserID.
func AuthRequired(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := v.Verify(c.Request)
		switch res.Status {
		case StatusAbsent:
			envelope.Unauthorized(c, MsgLoginRequired)
		case StatusInvalid:
			logger.FromContext(c.Request.Context()).Warn("rejected credential", "remote_addr", c.ClientIP())
			envelope.Forbidden(c, MsgTokenRejected)
		case StatusValid:
			c.Set(ContextUserID, res.Identity.UserID)
			c.Next()
		default:
			envelope.InternalError(c, fmt.Errorf("unexpected verification status %v", res.Status))
		}
	}
}

// UserID returns the authenticated caller stored by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// MustUserID は AuthRequired 配下のハンドラー用です。呼び出し元が無い場合は500を書き込み false を返します。
func MustUserID(c *gin.Context) (uint, bool) {
	id, ok := UserID(c)
	if !ok {
		envelope.Write(c, http.StatusInternalServerError, "", nil)
		return 0, false
	}
	return id, true
}
