package meta

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSecret = "meta_secret"

var testBody = []byte(`{"object":"page","entry":[{"changes":[{"field":"feed","value":{"post_id":"1_2","verb":"add"}}]}]}`)

func TestSign_MatchesHMAC(t *testing.T) {
	t.Parallel()

	mac := hmac.New(sha256.New, []byte(testSecret))
	_, _ = mac.Write(testBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	require.Equal(t, want, Sign(testSecret, testBody))
}

func TestVerify_Accepts(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testSecret)
	require.NoError(t, v.Verify(Sign(testSecret, testBody), testBody))
}

func TestVerify_AlgorithmCaseInsensitive(t *testing.T) {
	t.Parallel()

	header := Sign(testSecret, testBody)
	header = "SHA256" + header[len("sha256"):]
	require.NoError(t, NewVerifier(testSecret).Verify(header, testBody))
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()

	valid := Sign(testSecret, testBody)
	cases := []struct {
		name   string
		header string
		body   []byte
		want   error
	}{
		{"missing header", "", testBody, ErrMissingSignature},
		{"blank header", "   ", testBody, ErrMissingSignature},
		{"no separator", "deadbeef", testBody, ErrMalformedSignature},
		{"other algorithm", "sha1=deadbeef", testBody, ErrMalformedSignature},
		{"not hex", "sha256=zz", testBody, ErrInvalidSignature},
		{"wrong secret", Sign("other", testBody), testBody, ErrInvalidSignature},
		{"empty digest", "sha256=", testBody, ErrInvalidSignature},
		{"tampered body", valid, append([]byte(nil), append(testBody, ' ')...), ErrInvalidSignature},
	}

	v := NewVerifier(testSecret)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, v.Verify(tc.header, tc.body), tc.want)
		})
	}
}

func TestVerify_AnySingleByteFlipInvalidates(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testSecret)
	header := Sign(testSecret, testBody)

	for i := range testBody {
		flipped := append([]byte(nil), testBody...)
		flipped[i] ^= 0x01
		require.ErrorIs(t, v.Verify(header, flipped), ErrInvalidSignature, "byte %d", i)
	}
}
