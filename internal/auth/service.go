// Package auth implements credential verification and session issuance:
// registration, login, and the supporting token/password subpackages.
package auth

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/skillsenselab/identity-service/internal/auth/password"
	"github.com/skillsenselab/identity-service/internal/auth/token"
	"github.com/skillsenselab/identity-service/internal/errors"
	"github.com/skillsenselab/identity-service/internal/logger"
	"github.com/skillsenselab/identity-service/internal/user"
)

const instrumentationName = "github.com/skillsenselab/identity-service/internal/auth"

// Service orchestrates registration and login against the credential store.
// It holds no mutable state; every dependency is read-only after New.
type Service struct {
	store  user.Store
	hasher password.Hasher
	tokens *token.Service
	log    *logger.Logger

	registrations metric.Int64Counter
	logins        metric.Int64Counter
}

// New creates the auth service.
func New(store user.Store, hasher password.Hasher, tokens *token.Service, log *logger.Logger) *Service {
	meter := otel.Meter(instrumentationName)
	registrations, _ := meter.Int64Counter("auth.registrations",
		metric.WithDescription("User registrations by outcome"))
	logins, _ := meter.Int64Counter("auth.logins",
		metric.WithDescription("Login attempts by outcome"))

	return &Service{
		store:         store,
		hasher:        hasher,
		tokens:        tokens,
		log:           log.WithComponent("auth"),
		registrations: registrations,
		logins:        logins,
	}
}

// Register creates a new user and returns it with a fresh session token.
// The returned user representation never carries the password hash.
func (s *Service) Register(ctx context.Context, email, plainPassword, name string) (*user.User, string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "auth.Register")
	defer span.End()

	email = user.NormalizeEmail(email)

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.DatabaseError(err)
	}
	if existing != nil {
		s.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "duplicate")))
		return nil, "", errors.AlreadyExists("user").WithDetail("field", "email")
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, "", errors.Validation(err.Error())
	}

	u := &user.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, "", errors.DatabaseError(err)
	}

	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", errors.Internal(err)
	}

	s.registrations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	s.log.Info("User registered", logger.Fields("user_id", u.ID))
	return u, tok, nil
}

// Login verifies credentials and returns a session token. Unknown email and
// wrong password fail identically: same error, and a dummy hash comparison
// runs when no account exists so timing does not reveal which case it was.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "auth.Login")
	defer span.End()

	email = user.NormalizeEmail(email)

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", errors.DatabaseError(err)
	}
	if u == nil {
		s.hasher.DummyVerify(plainPassword)
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failure")))
		return "", errors.InvalidCredentials()
	}

	if err := s.hasher.Verify(plainPassword, u.PasswordHash); err != nil {
		s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failure")))
		s.log.Warn("Login failed", logger.Fields("user_id", u.ID))
		return "", errors.InvalidCredentials()
	}

	tok, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", errors.Internal(err)
	}

	s.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	s.log.Info("Login succeeded", logger.Fields(
		"user_id", u.ID,
		"token_digest", password.HashSHA256(tok)[:12],
	))
	return tok, nil
}
