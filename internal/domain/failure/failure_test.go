package failure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus_PerKind(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	cases := []struct {
		name     string
		err      error
		status   int
		textCode string
	}{
		{"authentication", Authentication(cause), http.StatusUnauthorized, TextCodeAuthentication},
		{"validation", Validation(cause, "decode body"), http.StatusBadRequest, TextCodeValidation},
		{"unknown object", UnknownObject("user"), http.StatusNotFound, TextCodeUnknownObject},
		{"enrichment", Enrichment(cause, "1_2"), http.StatusBadGateway, TextCodeEnrichment},
		{"delivery", Delivery(cause), http.StatusBadGateway, TextCodeDelivery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.status, HTTPStatus(tc.err))
			require.Equal(t, tc.textCode, TextCode(tc.err))
		})
	}
}

func TestHTTPStatus_PlainErrorIsInternal(t *testing.T) {
	t.Parallel()

	require.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
	require.Empty(t, TextCode(errors.New("plain")))
}

func TestHTTPStatus_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", UnknownObject("instagram"))
	require.Equal(t, http.StatusNotFound, HTTPStatus(err))
}
