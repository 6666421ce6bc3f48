package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveProof_Deterministic(t *testing.T) {
	p1 := DeriveProof("user-1", "2024-05-01T10:00:00Z")
	p2 := DeriveProof("user-1", "2024-05-01T10:00:00Z")
	require.Equal(t, p1, p2)
}

func TestDeriveProof_ChangesWithInput(t *testing.T) {
	base := DeriveProof("user-1", "2024-05-01T10:00:00Z")

	t.Run("different subject", func(t *testing.T) {
		require.NotEqual(t, base, DeriveProof("user-2", "2024-05-01T10:00:00Z"))
	})

	t.Run("different fingerprint", func(t *testing.T) {
		require.NotEqual(t, base, DeriveProof("user-1", "2024-05-01T10:00:01Z"))
	})
}

func TestDeriveProof_SeparatorPreventsCollisions(t *testing.T) {
	// Without a separator these two pairs would concatenate identically.
	require.NotEqual(t, DeriveProof("ab", "c"), DeriveProof("a", "bc"))
}

func TestDeriveProof_Encoding(t *testing.T) {
	proof := DeriveProof("user-1", "fp")

	raw, err := base64.RawURLEncoding.DecodeString(proof)
	require.NoError(t, err)
	require.Len(t, raw, 32, "proof should be a SHA-256 digest")
}
