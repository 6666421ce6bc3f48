package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// proofSeparator keeps (subject, fingerprint) pairs unambiguous. Without it,
// ("ab", "c") and ("a", "bc") would hash to the same proof.
const proofSeparator = "\x1f"

// DeriveProof returns the one-time proof bound into single-use tokens. It is
// a deterministic SHA-256 digest of the subject id and the user's current
// fingerprint, base64url encoded.
//
// Two properties matter here: repeated calls for unchanged user state return
// the same proof, so an issued token verifies until consumed; and any change
// to the fingerprint produces a different proof, which invalidates every
// token carrying the old one without any server-side token bookkeeping.
func DeriveProof(subjectID, fingerprint string) string {
	sum := sha256.Sum256([]byte(subjectID + proofSeparator + fingerprint))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
