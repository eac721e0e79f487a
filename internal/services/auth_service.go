package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"restaurant/internal/apperr"
	"restaurant/internal/identity"
	"restaurant/internal/logging"
	"restaurant/internal/models"
)

type UserStore interface {
	FindOrCreateUser(ctx context.Context, email, name string) (models.User, error)
}

type AuthService struct {
	verifier identity.Verifier
	users    UserStore
	log      logrus.FieldLogger
}

func NewAuthService(verifier identity.Verifier, users UserStore, log logrus.FieldLogger) *AuthService {
	return &AuthService{verifier: verifier, users: users, log: logging.Component(log, "auth")}
}

// Login verifies an identity token and returns the caller's identity,
// creating the user row on first login.
func (s *AuthService) Login(ctx context.Context, idToken string) (models.Identity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return models.Identity{}, apperr.InvalidInput("idToken is required")
	}

	claims, err := s.verifier.Verify(ctx, idToken)
	if errors.Is(err, identity.ErrMissingEmail) {
		s.log.Warn("login rejected: token has no email")
		return models.Identity{}, apperr.Unauthenticated("Identity token has no email")
	}
	if err != nil {
		s.log.WithError(err).Warn("login rejected: token verification failed")
		return models.Identity{}, apperr.Unauthenticated("Invalid identity token")
	}

	name := claims.Name
	if name == "" {
		name = strings.SplitN(claims.Email, "@", 2)[0]
	}

	user, err := s.users.FindOrCreateUser(ctx, claims.Email, name)
	if err != nil {
		return models.Identity{}, apperr.Internal("could not load user", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "uid": claims.UID}).Info("login succeeded")
	return models.Identity{UID: claims.UID, Email: user.Email, UserID: user.ID}, nil
}
