package user

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"job-connect/internal/domain/user"
	"job-connect/internal/pkg/jwt"
)

type stubUsers struct {
	byID map[uuid.UUID]user.User

	updated   *user.User
	resumeSet *user.ResumeFile
}

func (s *stubUsers) Create(context.Context, user.User) error { return nil }

func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (s *stubUsers) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (s *stubUsers) Update(_ context.Context, u user.User) error {
	s.updated = &u
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) SetResume(_ context.Context, id uuid.UUID, r user.ResumeFile) error {
	s.resumeSet = &r
	u := s.byID[id]
	u.Resume = &r
	s.byID[id] = u
	return nil
}

type stubStore struct {
	saved   map[string]string
	deleted []string
}

func (s *stubStore) Save(_ context.Context, key string, r io.Reader) error {
	b, _ := io.ReadAll(r)
	if s.saved == nil {
		s.saved = map[string]string{}
	}
	s.saved[key] = string(b)
	return nil
}

func (s *stubStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

type stubJWT struct{}

func (stubJWT) GenerateToken(uuid.UUID, string) (string, error) { return "fresh-token", nil }

func (stubJWT) ValidateToken(string) (jwt.Claims, error) { return jwt.Claims{}, nil }

func TestUpdateProfile_Partial(t *testing.T) {
	id := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]user.User{
		id: {ID: id, Name: "Dana", Bio: "old bio", Location: "Jakarta", Role: user.RoleJobseeker},
	}}
	svc := NewService(users, &stubStore{}, stubJWT{})

	bio := "  new bio  "
	u, token, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Bio: &bio})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "fresh-token" {
		t.Fatalf("expected a reissued token, got %q", token)
	}
	if u.Bio != "new bio" {
		t.Fatalf("expected trimmed bio, got %q", u.Bio)
	}
	if u.Name != "Dana" || u.Location != "Jakarta" {
		t.Fatalf("untouched fields should survive a partial update")
	}
}

func TestUpdateProfile_EmptyNameRejected(t *testing.T) {
	id := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]user.User{id: {ID: id, Name: "Dana"}}}
	svc := NewService(users, &stubStore{}, stubJWT{})

	empty := "   "
	_, _, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{Name: &empty})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateProfile_SkillsNormalized(t *testing.T) {
	id := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]user.User{id: {ID: id, Name: "Dana"}}}
	svc := NewService(users, &stubStore{}, stubJWT{})

	u, _, err := svc.UpdateProfile(context.Background(), id, UpdateProfileInput{
		Skills: []string{" Go ", "", "PostgreSQL"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(u.Skills) != 2 || u.Skills[0] != "Go" || u.Skills[1] != "PostgreSQL" {
		t.Fatalf("unexpected skills %v", u.Skills)
	}
}

func TestUploadResume_ReplacesPreviousBlob(t *testing.T) {
	id := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]user.User{
		id: {ID: id, Name: "Dana", Resume: &user.ResumeFile{Key: "profiles/old.pdf"}},
	}}
	files := &stubStore{}
	svc := NewService(users, files, stubJWT{})

	rf, err := svc.UploadResume(context.Background(), id, ResumeUpload{
		OriginalName: "CV.pdf",
		Content:      strings.NewReader("pdf bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !strings.HasPrefix(rf.Key, "profiles/") || !strings.HasSuffix(rf.Key, ".pdf") {
		t.Fatalf("unexpected key %q", rf.Key)
	}
	if users.resumeSet == nil || users.resumeSet.Key != rf.Key {
		t.Fatalf("expected resume metadata persisted")
	}
	if _, ok := files.saved[rf.Key]; !ok {
		t.Fatalf("expected new blob stored")
	}
	if len(files.deleted) != 1 || files.deleted[0] != "profiles/old.pdf" {
		t.Fatalf("expected old blob removed, got %v", files.deleted)
	}
}

func TestUploadResume_RequiresFile(t *testing.T) {
	id := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]user.User{id: {ID: id, Name: "Dana"}}}
	svc := NewService(users, &stubStore{}, stubJWT{})

	_, err := svc.UploadResume(context.Background(), id, ResumeUpload{OriginalName: "cv.pdf"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
