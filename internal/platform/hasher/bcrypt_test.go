package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cost          int
		safeLimit     int
		expectedCost  int
		expectedLimit int
	}{
		{"zero values fall back", 0, 0, bcrypt.DefaultCost, DefaultSafeLimit},
		{"cost above max falls back", 99, 16, bcrypt.DefaultCost, 16},
		{"custom values preserved", bcrypt.MinCost, 20, bcrypt.MinCost, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewBcryptHasher(tt.cost, tt.safeLimit)
			assert.Equal(t, tt.expectedCost, h.cost)
			assert.Equal(t, tt.expectedLimit, h.SafeLimit())
		})
	}
}

func TestBcryptHasher_CanHash(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost, DefaultSafeLimit)

	tests := []struct {
		name     string
		password string
		expected bool
	}{
		{"empty", "", true},
		{"short", "abc123", true},
		{"31 characters", strings.Repeat("a", 31), true},
		{"exactly 32 characters", strings.Repeat("a", 32), false},
		{"longer than limit", strings.Repeat("a", 64), false},
		{"31 multibyte characters within byte budget", strings.Repeat("é", 31), true},
		{"multibyte characters beyond bcrypt byte budget", strings.Repeat("日", 25), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, h.CanHash(tt.password))
		})
	}
}

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost, DefaultSafeLimit)

	digest, err := h.Hash("abc123")
	require.NoError(t, err)

	assert.NotEqual(t, "abc123", digest, "digest must not be the plaintext")
	assert.True(t, h.Verify("abc123", digest))
	assert.False(t, h.Verify("abc124", digest))
	assert.False(t, h.Verify("abc123", "not-a-bcrypt-digest"))
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost, DefaultSafeLimit)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}
