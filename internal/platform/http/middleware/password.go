package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"studyflow_backend/internal/platform/http/envelope"
)

// PasswordCarrier is implemented by request bodies that may carry a password.
type PasswordCarrier interface {
	Password() (string, bool)
}

// PasswordChecker reports whether a password can be hashed without truncation.
type PasswordChecker interface {
	CanHash(password string) bool
	SafeLimit() int
}

// PasswordTooLongMessage はパスワードが安全な上限を超えた場合のメッセージです。
func PasswordTooLongMessage(limit int) string {
	return fmt.Sprintf("Senha informada excedeu o limite de %d caracteres.", limit)
}

// PasswordGuard rejects with 400 a body bound by Validate[T] whose password cannot be hashed safely.
// It must run after Validate[T].
func PasswordGuard[T any](checker PasswordChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if body, ok := any(Body[T](c)).(PasswordCarrier); ok {
			if pw, set := body.Password(); set && !checker.CanHash(pw) {
				envelope.BadRequest(c, PasswordTooLongMessage(checker.SafeLimit()))
				return
			}
		}
		c.Next()
	}
}
