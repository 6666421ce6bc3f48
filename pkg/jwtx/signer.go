package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/antonybholmes/go-auth/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// Signer issues signed tokens with an Ed25519 private key. The paired public
// key is all a Verifier needs, so the private key never leaves issuance.
type Signer struct {
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewSigner loads an Ed25519 private key from PKCS8 PEM bytes.
func NewSigner(pemKey []byte) (*Signer, error) {
	key, err := cryptox.ParseEd25519PrivateKey(pemKey)
	if err != nil {
		return nil, err
	}

	return &Signer{
		key: key,
		pub: key.Public().(ed25519.PublicKey),
	}, nil
}

// Sign serializes and signs the claims, returning the compact three-segment
// token string. The signature covers every claim field.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)

	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// PublicKey returns the verification half of the key pair.
func (s *Signer) PublicKey() ed25519.PublicKey { return s.pub }

// Validate does a quick sanity check that usable key material is present.
func (s *Signer) Validate() error {
	if len(s.key) != ed25519.PrivateKeySize {
		return errors.New("jwtx: invalid Ed25519 private key size")
	}
	if len(s.pub) != ed25519.PublicKeySize {
		return errors.New("jwtx: invalid Ed25519 public key size")
	}
	return nil
}
