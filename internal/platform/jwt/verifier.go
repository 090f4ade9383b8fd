package jwtmw

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// Status は検証結果の種別です。
type Status int

const (
	// StatusAbsent は資格情報が送られていない(未ログイン)ことを示します。
	StatusAbsent Status = iota
	// StatusInvalid は資格情報が署名不一致・期限切れ・形式不正のいずれかであることを示します。
	StatusInvalid
	// StatusValid は資格情報が有効であり Identity が設定されていることを示します。
	StatusValid
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusInvalid:
		return "invalid"
	case StatusValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Identity is the caller resolved from a valid token.
type Identity struct {
	UserID uint
}

// Verification is the tagged result of Verify. Identity is meaningful only when Status is StatusValid.
type Verification struct {
	Status   Status
	Identity Identity
}

// Verifier validates tokens issued by the generator.
type Verifier struct {
	secret []byte
	source TokenSource
}

// NewVerifier creates a Verifier reading credentials from source.
func NewVerifier(secret string, source TokenSource) *Verifier {
	return &Verifier{secret: []byte(secret), source: source}
}

// Verify extracts the credential from r and validates it.
func (v *Verifier) Verify(r *http.Request) Verification {
	raw, ok := v.source.Extract(r)
	if !ok {
		return Verification{Status: StatusAbsent}
	}
	return v.VerifyToken(raw)
}

// VerifyToken validates a raw token string. Signature mismatch, expiry and malformed
// payloads all collapse to StatusInvalid.
func (v *Verifier) VerifyToken(raw string) Verification {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		// HMAC以外のアルゴリズムは拒否
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil || !token.Valid || claims.UserID == 0 {
		return Verification{Status: StatusInvalid}
	}
	return Verification{Status: StatusValid, Identity: Identity{UserID: claims.UserID}}
}
