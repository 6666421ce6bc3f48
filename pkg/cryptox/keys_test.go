package cryptox

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEd25519KeyRoundTrip(t *testing.T) {
	pemKey, err := GenerateEd25519Key()
	require.NoError(t, err)
	require.Contains(t, string(pemKey), "PRIVATE KEY")

	priv, err := ParseEd25519PrivateKey(pemKey)
	require.NoError(t, err)

	pub, ok := priv.Public().(ed25519.PublicKey)
	require.True(t, ok)

	pubPEM, err := MarshalEd25519PublicKey(pub)
	require.NoError(t, err)

	parsedPub, err := ParseEd25519PublicKey(pubPEM)
	require.NoError(t, err)
	require.True(t, pub.Equal(parsedPub))
}

func TestParseEd25519PrivateKey_Invalid(t *testing.T) {
	tests := []struct {
		name string
		pem  []byte
	}{
		{"not pem", []byte("garbage")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEd25519PrivateKey(tt.pem)
			require.Error(t, err)
		})
	}
}

func TestGenerateEd25519Key_Unique(t *testing.T) {
	k1, err := GenerateEd25519Key()
	require.NoError(t, err)
	k2, err := GenerateEd25519Key()
	require.NoError(t, err)
	require.NotEqual(t, k1, k2)
}
