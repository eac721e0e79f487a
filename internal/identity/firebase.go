// Package identity verifies identity-provider tokens presented at login.
package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const googleCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrMissingEmail = errors.New("identity token has no email claim")
)

// Claims is the verified identity extracted from a token.
type Claims struct {
	UID   string
	Email string
	Name  string
}

type Verifier interface {
	Verify(ctx context.Context, idToken string) (Claims, error)
}

type firebaseClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// FirebaseVerifier checks Firebase ID tokens against Google's published
// signing certificates.
type FirebaseVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client
	now       func() time.Time

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

type Option func(*FirebaseVerifier)

func WithCertsURL(url string) Option {
	return func(v *FirebaseVerifier) { v.certsURL = url }
}

func WithHTTPClient(client *http.Client) Option {
	return func(v *FirebaseVerifier) { v.client = client }
}

func WithClock(now func() time.Time) Option {
	return func(v *FirebaseVerifier) { v.now = now }
}

func NewFirebaseVerifier(projectID string, opts ...Option) *FirebaseVerifier {
	v := &FirebaseVerifier{
		projectID: projectID,
		certsURL:  googleCertsURL,
		client:    &http.Client{Timeout: 5 * time.Second},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (Claims, error) {
	keys, err := v.publicKeys(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("load signing keys: %w", err)
	}

	claims := &firebaseClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		key, ok := keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		return Claims{}, ErrMissingEmail
	}

	return Claims{UID: claims.Subject, Email: email, Name: strings.TrimSpace(claims.Name)}, nil
}

var maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)

// publicKeys returns the certificate set, refetching once the Cache-Control
// max-age served with it has elapsed.
func (v *FirebaseVerifier) publicKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keys != nil && v.now().Before(v.expires) {
		return v.keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("certificate endpoint returned status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return nil, fmt.Errorf("decode certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pem := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return nil, fmt.Errorf("parse certificate %s: %w", kid, err)
		}
		keys[kid] = key
	}

	ttl := time.Hour
	if m := maxAgePattern.FindStringSubmatch(resp.Header.Get("Cache-Control")); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil {
			ttl = time.Duration(secs) * time.Second
		}
	}

	v.keys = keys
	v.expires = v.now().Add(ttl)
	return keys, nil
}
