// Package session maps verified identities to server-side sessions referenced
// by a signed cookie.
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"

	"restaurant/internal/models"
)

const CookieName = "session"

var ErrNoSession = errors.New("no valid session")

type cookieClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

type Manager struct {
	store      Store
	signingKey []byte
	pepper     []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewManager derives the cookie signing key and the token-hash pepper from one
// secret, so rotating the secret invalidates both.
func NewManager(store Store, secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	signingKey, err := deriveKey(secret, "restaurant session cookie")
	if err != nil {
		return nil, err
	}
	pepper, err := deriveKey(secret, "restaurant session token hash")
	if err != nil {
		return nil, err
	}
	return &Manager{
		store:      store,
		signingKey: signingKey,
		pepper:     pepper,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}

// TTL is the lifetime given to new sessions and their cookies.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create stores a new session for ident and returns the cookie value.
func (m *Manager) Create(ctx context.Context, ident models.Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	now := m.now().UTC()
	expires := now.Add(m.ttl)
	sess := models.Session{
		TokenHash: m.hashToken(token),
		UID:       ident.UID,
		Email:     ident.Email,
		UserID:    ident.UserID,
		ExpiresAt: expires,
		CreatedAt: now,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	cookie := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		SID: token,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	return cookie.SignedString(m.signingKey)
}

// Resolve returns the identity behind a cookie value. Any failure, from a bad
// signature to an expired or deleted session, yields ErrNoSession unless the
// store itself errored.
func (m *Manager) Resolve(ctx context.Context, cookie string) (models.Identity, error) {
	sid, err := m.parse(cookie, true)
	if err != nil {
		return models.Identity{}, ErrNoSession
	}

	sess, err := m.store.Find(ctx, m.hashToken(sid))
	if errors.Is(err, ErrNotFound) {
		return models.Identity{}, ErrNoSession
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("find session: %w", err)
	}
	if !m.now().Before(sess.ExpiresAt) {
		return models.Identity{}, ErrNoSession
	}
	return sess.Identity(), nil
}

// Destroy deletes the session behind cookie. Unknown, expired or malformed
// cookies are not an error.
func (m *Manager) Destroy(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	sid, err := m.parse(cookie, false)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, m.hashToken(sid))
}

func (m *Manager) parse(cookie string, validateClaims bool) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	}
	if validateClaims {
		opts = append(opts, jwt.WithExpirationRequired())
	} else {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(cookie, claims, func(t *jwt.Token) (interface{}, error) {
		return m.signingKey, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("parse session cookie: %w", err)
	}
	if claims.SID == "" {
		return "", errors.New("session cookie has no sid")
	}
	return claims.SID, nil
}

func (m *Manager) hashToken(token string) string {
	mac := hmac.New(sha256.New, m.pepper)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
