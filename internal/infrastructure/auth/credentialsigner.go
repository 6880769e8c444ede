package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACCredentialSigner signs ticket QR payloads with HMAC-SHA256 and emits
// the signature as lowercase hex. It implements ticketing.CredentialSigner.
type HMACCredentialSigner struct {
	secret []byte
}

// NewHMACCredentialSigner creates a signer with the given secret.
func NewHMACCredentialSigner(secret string) *HMACCredentialSigner {
	return &HMACCredentialSigner{secret: []byte(secret)}
}

// Sign computes the hex-encoded HMAC-SHA256 signature of payload.
func (s *HMACCredentialSigner) Sign(payload []byte) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify recomputes the signature and compares in constant time.
func (s *HMACCredentialSigner) Verify(payload []byte, signature string) bool {
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
