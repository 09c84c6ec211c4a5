package meta

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// SignatureHeader carries the HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Hub-Signature-256"

const signatureAlgorithm = "sha256"

var (
	ErrMissingSignature   = errors.New("signature header is required")
	ErrMalformedSignature = errors.New("signature header is malformed")
	ErrInvalidSignature   = errors.New("invalid signature")
)

// Verifier checks Meta webhook signatures against the app secret.
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the given app secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify validates header ("sha256=<hex>") against body. body must be the exact
// bytes received on the wire.
func (v *Verifier) Verify(header string, body []byte) error {
	header = strings.TrimSpace(header)
	if header == "" {
		return ErrMissingSignature
	}

	algorithm, digest, ok := strings.Cut(header, "=")
	if !ok || !strings.EqualFold(algorithm, signatureAlgorithm) {
		return ErrMalformedSignature
	}

	provided, err := hex.DecodeString(digest)
	if err != nil {
		return ErrInvalidSignature
	}

	if !hmac.Equal(provided, v.sum(body)) {
		return ErrInvalidSignature
	}
	return nil
}

func (v *Verifier) sum(body []byte) []byte {
	mac := hmac.New(sha256.New, v.secret)
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}

// Sign returns the header value Meta would send for body.
func Sign(secret string, body []byte) string {
	return signatureAlgorithm + "=" + hex.EncodeToString(NewVerifier(secret).sum(body))
}
