package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"job-connect/internal/domain/user"
	"job-connect/internal/pkg/jwt"
)

type stubUsers struct {
	byEmail map[string]user.User

	created   *user.User
	createErr error
}

func (s *stubUsers) Create(_ context.Context, u user.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = &u
	if s.byEmail == nil {
		s.byEmail = map[string]user.User{}
	}
	s.byEmail[u.Email] = u
	return nil
}

func (s *stubUsers) GetByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *stubUsers) Update(context.Context, user.User) error { return nil }

func (s *stubUsers) SetResume(context.Context, uuid.UUID, user.ResumeFile) error { return nil }

type stubJWT struct {
	token string
	err   error
}

func (s stubJWT) GenerateToken(uuid.UUID, string) (string, error) { return s.token, s.err }

func (s stubJWT) ValidateToken(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

func TestRegister_Success(t *testing.T) {
	users := &stubUsers{}
	svc := NewService(users, stubJWT{token: "tok"})

	u, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana",
		Email:    "  Dana@Example.COM ",
		Password: "supersecret",
		Role:     "recruiter",
		Company:  "Acme",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok" {
		t.Fatalf("expected token, got %q", token)
	}
	if u.Email != "dana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must never leave the usecase")
	}
	if users.created == nil {
		t.Fatalf("expected user persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(users.created.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &stubUsers{byEmail: map[string]user.User{
		"dana@example.com": {Email: "dana@example.com"},
	}}
	svc := NewService(users, stubJWT{token: "tok"})

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "supersecret",
		Role:     "jobseeker",
	})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(&stubUsers{}, stubJWT{token: "tok"})

	cases := []RegisterInput{
		{Name: "Dana", Email: "", Password: "supersecret", Role: "jobseeker"},
		{Name: "", Email: "d@e.com", Password: "supersecret", Role: "jobseeker"},
		{Name: "Dana", Email: "d@e.com", Password: "short", Role: "jobseeker"},
		{Name: "Dana", Email: "d@e.com", Password: "supersecret", Role: "admin"},
	}
	for i, in := range cases {
		if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := &stubUsers{byEmail: map[string]user.User{
		"dana@example.com": {
			ID:           uuid.New(),
			Email:        "dana@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleJobseeker,
		},
	}}
	svc := NewService(users, stubJWT{token: "tok"})

	u, token, err := svc.Login(context.Background(), LoginInput{Email: "Dana@Example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok" || u.PasswordHash != "" {
		t.Fatalf("unexpected login result")
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "dana@example.com", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "supersecret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
