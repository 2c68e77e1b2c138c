package auth

import (
	"context"
	"testing"
	"time"

	"github.com/skillsenselab/identity-service/internal/auth/password"
	"github.com/skillsenselab/identity-service/internal/auth/token"
	"github.com/skillsenselab/identity-service/internal/errors"
	"github.com/skillsenselab/identity-service/internal/logger"
	"github.com/skillsenselab/identity-service/internal/user"
)

func newTestService(t *testing.T) (*Service, *user.MemoryStore) {
	t.Helper()

	tokens, err := token.NewService(&token.Config{
		Secret: "0123456789abcdef0123456789abcdef",
		TTL:    time.Hour,
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	store := user.NewMemoryStore()
	svc := New(store, password.NewBcryptHasher(4), tokens, logger.NewDefault("test"))
	return svc, store
}

func TestRegister_ThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, tok, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.ID == "" {
		t.Error("registered user must have an ID")
	}
	if tok == "" {
		t.Error("register must return a token")
	}

	claims, err := svc.tokens.Verify(tok)
	if err != nil {
		t.Fatalf("registration token must verify: %v", err)
	}
	if claims.SubjectID() != u.ID {
		t.Errorf("token subject %s != user ID %s", claims.SubjectID(), u.ID)
	}

	loginTok, err := svc.Login(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login after register: %v", err)
	}
	claims, err = svc.tokens.Verify(loginTok)
	if err != nil {
		t.Fatalf("login token must verify: %v", err)
	}
	if claims.SubjectID() != u.ID {
		t.Errorf("login token subject %s != user ID %s", claims.SubjectID(), u.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "password123", "Alice"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same email, different case: still a duplicate.
	_, _, err := svc.Register(ctx, "Alice@Example.COM", "password456", "Other Alice")
	if err == nil {
		t.Fatal("duplicate email must fail")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeAlreadyExists {
		t.Errorf("expected ALREADY_EXISTS, got %s", appErr.Code)
	}
	if appErr.HTTPStatus != 409 {
		t.Errorf("expected 409, got %d", appErr.HTTPStatus)
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	u, _, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := store.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Fatal("store must hold a hash, never the plaintext")
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "password123", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassErr := svc.Login(ctx, "alice@example.com", "wrong-password")
	_, unknownErr := svc.Login(ctx, "nobody@example.com", "password123")

	if wrongPassErr == nil || unknownErr == nil {
		t.Fatal("both logins must fail")
	}

	// Wrong password and unknown email must be observationally identical.
	wrongApp, _ := errors.AsAppError(wrongPassErr)
	unknownApp, _ := errors.AsAppError(unknownErr)
	if wrongApp == nil || unknownApp == nil {
		t.Fatalf("expected AppErrors, got %T / %T", wrongPassErr, unknownErr)
	}
	if wrongApp.Code != unknownApp.Code {
		t.Errorf("codes differ: %s vs %s", wrongApp.Code, unknownApp.Code)
	}
	if wrongApp.HTTPStatus != unknownApp.HTTPStatus {
		t.Errorf("statuses differ: %d vs %d", wrongApp.HTTPStatus, unknownApp.HTTPStatus)
	}
	if wrongApp.Message != unknownApp.Message {
		t.Errorf("messages differ: %q vs %q", wrongApp.Message, unknownApp.Message)
	}
	if wrongApp.HTTPStatus != 401 {
		t.Errorf("expected 401, got %d", wrongApp.HTTPStatus)
	}
}

func TestLogin_EmailNormalization(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "  Alice@Example.com ", "password123", "Alice"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("login with normalized email: %v", err)
	}
	if _, err := svc.Login(ctx, "ALICE@EXAMPLE.COM", "password123"); err != nil {
		t.Fatalf("login with uppercase email: %v", err)
	}
}
