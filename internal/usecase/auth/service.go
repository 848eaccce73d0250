package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"job-connect/internal/domain/user"
	"job-connect/internal/pkg/jwt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Company  string
}

type LoginInput struct {
	Email    string
	Password string
}

type Usecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, error)
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, "", ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return user.User{}, "", ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, "", ErrInvalidInput
	}
	role := user.Role(strings.TrimSpace(in.Role))
	if !role.Valid() {
		return user.User{}, "", ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, "", ErrInternal
	}
	if exists {
		return user.User{}, "", ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Company:      strings.TrimSpace(in.Company),
	}

	if err := s.users.Create(ctx, u); err != nil {
		// The unique index may have raced the pre-check.
		exists, exErr := s.users.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return user.User{}, "", ErrEmailAlreadyRegistered
		}
		return user.User{}, "", ErrInternal
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return sanitizeUser(u), token, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return sanitizeUser(u), token, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
