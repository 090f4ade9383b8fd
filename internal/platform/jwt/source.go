package jwtmw

import (
	"net/http"
	"strings"

	"studyflow_backend/internal/platform/config"
)

// TokenSource はリクエストからベアラー資格情報を取り出します。
// ok=false は資格情報が存在しないこと(匿名)を意味します。
type TokenSource interface {
	Extract(r *http.Request) (token string, ok bool)
}

// HeaderSource reads "Authorization: Bearer <token>". A bare token without the scheme is also accepted.
type HeaderSource struct{}

func (HeaderSource) Extract(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" || strings.EqualFold(auth, "Bearer") {
		return "", false
	}
	if scheme, rest, found := strings.Cut(auth, " "); found && strings.EqualFold(scheme, "Bearer") {
		auth = strings.TrimSpace(rest)
	}
	if auth == "" {
		return "", false
	}
	return auth, true
}

// CookieSource reads the token from the named cookie.
type CookieSource struct {
	Name string
}

func (s CookieSource) Extract(r *http.Request) (string, bool) {
	ck, err := r.Cookie(s.Name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// NewTokenSource returns the source matching the configured transport.
func NewTokenSource(cfg config.Config) TokenSource {
	if cfg.TokenTransport == config.TransportCookie {
		return CookieSource{Name: cfg.TokenCookieName}
	}
	return HeaderSource{}
}
