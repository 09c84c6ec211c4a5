package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"page-relay/internal/adapter/logging"
	"page-relay/internal/adapter/meta"
)

const testSecret = "app-secret"

func guarded(t *testing.T, maxBytes int64) (http.Handler, *[]string) {
	t.Helper()
	var bodies []string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		bodies = append(bodies, string(data))
		w.WriteHeader(http.StatusOK)
	})
	return VerifySignature(meta.NewVerifier(testSecret), maxBytes, logging.NewNop())(next), &bodies
}

func signedRequest(body, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set(meta.SignatureHeader, signature)
	}
	return req
}

func TestVerifySignature_PassesExactBody(t *testing.T) {
	t.Parallel()

	h, bodies := guarded(t, 1<<20)
	body := `{"object":"page",  "entry":[]}`

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(body, meta.Sign(testSecret, []byte(body))))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{body}, *bodies)
}

func TestVerifySignature_Rejects(t *testing.T) {
	t.Parallel()

	body := `{"object":"page","entry":[]}`
	cases := map[string]string{
		"missing":      "",
		"wrong secret": meta.Sign("other-secret", []byte(body)),
		"wrong body":   meta.Sign(testSecret, []byte(body+" ")),
		"malformed":    "sha1",
		"bad hex":      "sha256=zz",
	}

	for name, signature := range cases {
		t.Run(name, func(t *testing.T) {
			h, bodies := guarded(t, 1<<20)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, signedRequest(body, signature))

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Empty(t, rec.Body.String())
			require.Empty(t, *bodies)
		})
	}
}

func TestVerifySignature_TooLarge(t *testing.T) {
	t.Parallel()

	h, bodies := guarded(t, 16)
	body := strings.Repeat("x", 64)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, signedRequest(body, meta.Sign(testSecret, []byte(body))))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Empty(t, *bodies)
}
