// Package hasher はパスワードの一方向ハッシュ化と検証を提供します。
package hasher

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// DefaultSafeLimit は canHash が許容する文字数の上限（この値未満のみ許可）です。
const DefaultSafeLimit = 32

// bcryptMaxBytes はbcryptが入力として扱える最大バイト数です。これを超える部分は切り捨てられます。
const bcryptMaxBytes = 72

// BcryptHasher はbcryptによるPasswordHasherの実装です。
type BcryptHasher struct {
	cost      int
	safeLimit int
}

// NewBcryptHasher は指定されたコストと安全文字数上限でBcryptHasherを生成します。
// 範囲外のコストはbcrypt.DefaultCostに、0以下の上限はDefaultSafeLimitに置き換えます。
func NewBcryptHasher(cost, safeLimit int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if safeLimit <= 0 {
		safeLimit = DefaultSafeLimit
	}
	return &BcryptHasher{cost: cost, safeLimit: safeLimit}
}

// SafeLimit returns the exclusive character limit enforced by CanHash.
func (h *BcryptHasher) SafeLimit() int {
	return h.safeLimit
}

// CanHash reports whether password is short enough to be hashed without truncation.
func (h *BcryptHasher) CanHash(password string) bool {
	return utf8.RuneCountInString(password) < h.safeLimit && len(password) <= bcryptMaxBytes
}

// Hash returns the bcrypt digest of password. Callers must check CanHash first.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest never matches.
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
