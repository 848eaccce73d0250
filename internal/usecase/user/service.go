package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"job-connect/internal/domain/user"
	"job-connect/internal/infrastructure/storage"
	"job-connect/internal/pkg/jwt"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// UpdateProfileInput is a partial update: nil fields are left untouched.
type UpdateProfileInput struct {
	Name               *string
	Bio                *string
	Location           *string
	Phone              *string
	Company            *string
	CompanyDescription *string
	Website            *string
	Skills             []string
	Education          []user.Education
	Experience         []user.Experience
}

type ResumeUpload struct {
	OriginalName string
	Content      io.Reader
}

type Usecase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (user.User, string, error)
	UploadResume(ctx context.Context, id uuid.UUID, up ResumeUpload) (user.ResumeFile, error)
}

type Service struct {
	users user.Repository
	files storage.Store
	jwt   jwt.Service
}

func NewService(users user.Repository, files storage.Store, jwtSvc jwt.Service) *Service {
	return &Service{users: users, files: files, jwt: jwtSvc}
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitize(u), nil
}

// UpdateProfile applies the supplied fields and reissues a token, matching
// the register/login response shape so clients can refresh their session in
// place.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (user.User, string, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrNotFound
		}
		return user.User{}, "", ErrInternal
	}

	applyString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	applyString(&u.Name, in.Name)
	applyString(&u.Bio, in.Bio)
	applyString(&u.Location, in.Location)
	applyString(&u.Phone, in.Phone)
	applyString(&u.Company, in.Company)
	applyString(&u.CompanyDescription, in.CompanyDescription)
	applyString(&u.Website, in.Website)

	if in.Skills != nil {
		u.Skills = normalizeSkills(in.Skills)
	}
	if in.Education != nil {
		u.Education = in.Education
	}
	if in.Experience != nil {
		u.Experience = in.Experience
	}

	if u.Name == "" {
		return user.User{}, "", ErrInvalidInput
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrNotFound
		}
		return user.User{}, "", ErrInternal
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return sanitize(u), token, nil
}

// UploadResume replaces the single profile resume. The previous blob is
// removed best-effort once the new metadata is persisted.
func (s *Service) UploadResume(ctx context.Context, id uuid.UUID, up ResumeUpload) (user.ResumeFile, error) {
	if up.Content == nil || strings.TrimSpace(up.OriginalName) == "" {
		return user.ResumeFile{}, ErrInvalidInput
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ResumeFile{}, ErrNotFound
		}
		return user.ResumeFile{}, ErrInternal
	}

	key := storage.NewKey("profiles", up.OriginalName)
	if err := s.files.Save(ctx, key, up.Content); err != nil {
		return user.ResumeFile{}, ErrInternal
	}

	rf := user.ResumeFile{
		Filename:     key[strings.LastIndex(key, "/")+1:],
		OriginalName: up.OriginalName,
		Key:          key,
		UploadedAt:   time.Now().UTC(),
	}

	if err := s.users.SetResume(ctx, id, rf); err != nil {
		_ = s.files.Delete(ctx, key)
		if errors.Is(err, user.ErrNotFound) {
			return user.ResumeFile{}, ErrNotFound
		}
		return user.ResumeFile{}, ErrInternal
	}

	if u.Resume != nil && u.Resume.Key != "" && u.Resume.Key != key {
		_ = s.files.Delete(ctx, u.Resume.Key)
	}

	return rf, nil
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, sk := range in {
		sk = strings.TrimSpace(sk)
		if sk == "" {
			continue
		}
		out = append(out, sk)
	}
	return out
}

func sanitize(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
