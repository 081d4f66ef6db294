package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewToken(t *testing.T) {
	a, b := NewToken(), NewToken()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	hash, err := HashToken("secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)
}

func TestCheckToken(t *testing.T) {
	tok := NewToken()
	hash, err := HashToken(tok)
	require.NoError(t, err)
	assert.True(t, CheckToken(tok, hash))
	assert.False(t, CheckToken(NewToken(), hash))
	assert.False(t, CheckToken(tok, "not-a-hash"))
}

func TestValidatePlan(t *testing.T) {
	assert.NoError(t, validatePlan("event E-3", []byte(`{"version":4}`)))
	assert.ErrorIs(t, validatePlan("x", nil), ErrInvalidPlan)
	long := make([]byte, MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, validatePlan(string(long), []byte(`{}`)), ErrInvalidPlan)
}

// Property: HashToken always produces a hash that CheckToken verifies.
func TestPropertyHashAndCheck(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tok := rapid.StringMatching(`[a-f0-9]{1,64}`).Draw(t, "token")
		hash, err := HashToken(tok)
		if err != nil {
			t.Fatalf("HashToken failed: %v", err)
		}
		if !CheckToken(tok, hash) {
			t.Fatalf("CheckToken failed for token %q", tok)
		}
	})
}

// Property: a different token never validates.
func TestPropertyWrongTokenNeverValidates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		correct := rapid.StringMatching(`[a-f0-9]{6,30}`).Draw(t, "correct")
		wrong := rapid.StringMatching(`[a-f0-9]{6,30}`).Draw(t, "wrong")
		if correct == wrong {
			return
		}
		hash, err := HashToken(correct)
		assert.NoError(t, err)
		assert.False(t, CheckToken(wrong, hash))
	})
}
