package jwtmw

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieWriter sets the auth cookie after a successful login when the cookie transport is in use.
type CookieWriter struct {
	Name    string
	MaxAge  time.Duration
	Secure  bool
	Enabled bool
}

// Write は有効な場合のみ HttpOnly / SameSite=Lax のCookieを設定します。
func (w CookieWriter) Write(c *gin.Context, token string) {
	if !w.Enabled {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(w.Name, token, int(w.MaxAge/time.Second), "/", "", w.Secure, true)
}
