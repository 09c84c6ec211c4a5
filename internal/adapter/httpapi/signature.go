package httpapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"page-relay/internal/adapter/meta"
	"page-relay/internal/domain/failure"
	"page-relay/internal/domain/ports"
)

// SignatureVerifier authenticates a raw request body against its signature header.
type SignatureVerifier interface {
	Verify(header string, body []byte) error
}

// VerifySignature reads the body once, at most maxBytes of it, and lets the request
// through only when the X-Hub-Signature-256 header matches. The body is restored
// for the next handler. Rejected requests get an empty 401, oversized ones a 413.
func VerifySignature(verifier SignatureVerifier, maxBytes int64, logger ports.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reader := r.Body
			if maxBytes > 0 {
				reader = http.MaxBytesReader(w, r.Body, maxBytes)
			}

			body, err := io.ReadAll(reader)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					logger.Warn(r.Context(), "webhook body too large", "limit", tooLarge.Limit)
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				logger.Warn(r.Context(), "failed to read webhook body", "error", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			if err := verifier.Verify(r.Header.Get(meta.SignatureHeader), body); err != nil {
				authErr := failure.Authentication(err)
				logger.Warn(r.Context(), "rejected webhook delivery",
					"text_code", failure.TextCode(authErr),
					"error", err)
				w.WriteHeader(failure.HTTPStatus(authErr))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			r.ContentLength = int64(len(body))
			next.ServeHTTP(w, r)
		})
	}
}
