package identity

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "test-project"

type fixture struct {
	key      *rsa.PrivateKey
	verifier *FirebaseVerifier
	fetches  *atomic.Int32
	now      time.Time
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "securetoken"},
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Header().Set("Cache-Control", "public, max-age=600")
		_ = json.NewEncoder(w).Encode(map[string]string{"kid-1": string(certPEM)})
	}))
	t.Cleanup(srv.Close)

	v := NewFirebaseVerifier(testProject,
		WithCertsURL(srv.URL),
		WithClock(func() time.Time { return now }),
	)
	return fixture{key: key, verifier: v, fetches: &fetches, now: now}
}

func (f fixture) sign(t *testing.T, kid string, mutate func(*firebaseClaims)) string {
	t.Helper()

	claims := &firebaseClaims{
		Email: "Diner@Example.com",
		Name:  "Diner",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://securetoken.google.com/" + testProject,
			Audience:  jwt.ClaimStrings{testProject},
			Subject:   "firebase-uid-1",
			IssuedAt:  jwt.NewNumericDate(f.now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(f.now.Add(time.Hour)),
		},
	}
	if mutate != nil {
		mutate(claims)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(f.key)
	require.NoError(t, err)
	return signed
}

func TestVerifyAcceptsValidToken(t *testing.T) {
	f := newFixture(t)

	claims, err := f.verifier.Verify(context.Background(), f.sign(t, "kid-1", nil))
	require.NoError(t, err)
	assert.Equal(t, Claims{UID: "firebase-uid-1", Email: "diner@example.com", Name: "Diner"}, claims)

	_, err = f.verifier.Verify(context.Background(), f.sign(t, "kid-1", nil))
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.fetches.Load(), "certificates should be reused within max-age")
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	f := newFixture(t)

	cases := map[string]string{
		"wrong audience": f.sign(t, "kid-1", func(c *firebaseClaims) { c.Audience = jwt.ClaimStrings{"other"} }),
		"wrong issuer":   f.sign(t, "kid-1", func(c *firebaseClaims) { c.Issuer = "https://evil.example" }),
		"expired":        f.sign(t, "kid-1", func(c *firebaseClaims) { c.ExpiresAt = jwt.NewNumericDate(f.now.Add(-time.Minute)) }),
		"unknown kid":    f.sign(t, "kid-2", nil),
		"empty subject":  f.sign(t, "kid-1", func(c *firebaseClaims) { c.Subject = "" }),
		"garbage":        "not-a-jwt",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.verifier.Verify(context.Background(), token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestVerifyRequiresEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.verifier.Verify(context.Background(), f.sign(t, "kid-1", func(c *firebaseClaims) { c.Email = "" }))
	assert.ErrorIs(t, err, ErrMissingEmail)
}
