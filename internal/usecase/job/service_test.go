package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"job-connect/internal/domain/job"
	"job-connect/internal/domain/user"
)

type stubJobs struct {
	byID map[uuid.UUID]job.Job

	listRows  []job.Job
	listTotal int
	lastList  job.ListFilter

	deleted []uuid.UUID
}

func (s *stubJobs) Create(_ context.Context, j job.Job) error {
	if s.byID == nil {
		s.byID = map[uuid.UUID]job.Job{}
	}
	s.byID[j.ID] = j
	return nil
}

func (s *stubJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := s.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (s *stubJobs) GetRecruiterSummary(context.Context, uuid.UUID) (job.RecruiterSummary, error) {
	return job.RecruiterSummary{Name: "Dana"}, nil
}

func (s *stubJobs) Update(_ context.Context, j job.Job) error {
	s.byID[j.ID] = j
	return nil
}

func (s *stubJobs) Delete(_ context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.byID, id)
	return nil
}

func (s *stubJobs) ListActive(_ context.Context, f job.ListFilter) ([]job.Job, int, error) {
	s.lastList = f
	return s.listRows, s.listTotal, nil
}

func (s *stubJobs) ListByRecruiter(context.Context, uuid.UUID) ([]job.Job, error) {
	return nil, nil
}

type stubUsers struct {
	byID map[uuid.UUID]user.User
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

func (s *stubUsers) Update(context.Context, user.User) error { return nil }

func (s *stubUsers) SetResume(context.Context, uuid.UUID, user.ResumeFile) error { return nil }

type stubCache struct {
	entries map[string][]byte

	hits     int
	sets     int
	patterns []string

	hitValue *Page
}

func (c *stubCache) GetJSON(_ context.Context, _ string, out any) (bool, error) {
	if c.hitValue == nil {
		return false, nil
	}
	c.hits++
	if p, ok := out.(*Page); ok {
		*p = *c.hitValue
	}
	return true, nil
}

func (c *stubCache) SetJSON(_ context.Context, key string, _ any, _ time.Duration) error {
	c.sets++
	if c.entries == nil {
		c.entries = map[string][]byte{}
	}
	c.entries[key] = nil
	return nil
}

func (c *stubCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.patterns = append(c.patterns, pattern)
	return nil
}

func TestList_PaginationMath(t *testing.T) {
	jobs := &stubJobs{listRows: make([]job.Job, 10), listTotal: 25}
	svc := NewService(jobs, &stubUsers{}, nil, nil)

	page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 25 || page.Pages != 3 || page.Page != 2 {
		t.Fatalf("unexpected envelope: total=%d pages=%d page=%d", page.Total, page.Pages, page.Page)
	}
	if jobs.lastList.Offset != 10 || jobs.lastList.Limit != 10 {
		t.Fatalf("unexpected filter: %+v", jobs.lastList)
	}
}

func TestList_Defaults(t *testing.T) {
	jobs := &stubJobs{}
	svc := NewService(jobs, &stubUsers{}, nil, nil)

	page, err := svc.List(context.Background(), ListParams{Page: -3, Limit: 0})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Page != 1 || page.Pages != 0 {
		t.Fatalf("unexpected envelope: %+v", page)
	}
	if jobs.lastList.Limit != 10 || jobs.lastList.Offset != 0 {
		t.Fatalf("expected default page size, got %+v", jobs.lastList)
	}

	if _, err := svc.List(context.Background(), ListParams{Limit: 500}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if jobs.lastList.Limit != 50 {
		t.Fatalf("expected limit clamped to 50, got %d", jobs.lastList.Limit)
	}
}

func TestList_CacheHitSkipsRepository(t *testing.T) {
	jobs := &stubJobs{listRows: make([]job.Job, 1), listTotal: 1}
	cached := Page{Total: 7, Pages: 1, Page: 1}
	c := &stubCache{hitValue: &cached}
	svc := NewService(jobs, &stubUsers{}, c, nil)

	page, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 7 {
		t.Fatalf("expected cached envelope, got %+v", page)
	}
	if c.hits != 1 || c.sets != 0 {
		t.Fatalf("expected one hit and no write, got hits=%d sets=%d", c.hits, c.sets)
	}
}

func TestList_CacheMissStoresResult(t *testing.T) {
	jobs := &stubJobs{listRows: make([]job.Job, 2), listTotal: 2}
	c := &stubCache{}
	svc := NewService(jobs, &stubUsers{}, c, nil)

	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.sets != 1 {
		t.Fatalf("expected result cached, sets=%d", c.sets)
	}
}

func TestCreate_CompanyFallsBackToProfile(t *testing.T) {
	recruiterID := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]user.User{
		recruiterID: {ID: recruiterID, Company: "Acme Corp"},
	}}
	jobs := &stubJobs{}
	c := &stubCache{}
	svc := NewService(jobs, users, c, nil)

	j, err := svc.Create(context.Background(), recruiterID, CreateInput{
		Title:       "Backend Engineer",
		Location:    "Jakarta",
		Description: "Build the job board",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if j.Company != "Acme Corp" {
		t.Fatalf("expected company from profile, got %q", j.Company)
	}
	if j.Type != job.TypeFullTime || j.Status != job.StatusActive {
		t.Fatalf("expected defaults, got type=%s status=%s", j.Type, j.Status)
	}
	if len(c.patterns) != 1 || c.patterns[0] != "jobs:list:*" {
		t.Fatalf("expected listing invalidation, got %v", c.patterns)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&stubJobs{}, &stubUsers{byID: map[uuid.UUID]user.User{}}, nil, nil)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Location: "Jakarta", Description: "d", Company: "Acme"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing title should fail, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateInput{
		Title: "x", Location: "y", Description: "z", Company: "Acme", Type: "Gig",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown type should fail, got %v", err)
	}
}

func TestUpdate_OwnershipAndPartial(t *testing.T) {
	recruiterID := uuid.New()
	j := job.Job{
		ID:          uuid.New(),
		RecruiterID: recruiterID,
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Jakarta",
		Type:        job.TypeFullTime,
		Description: "desc",
		Status:      job.StatusActive,
	}
	jobs := &stubJobs{byID: map[uuid.UUID]job.Job{j.ID: j}}
	svc := NewService(jobs, &stubUsers{}, nil, nil)

	if _, err := svc.Update(context.Background(), j.ID, uuid.New(), UpdateInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	status := string(job.StatusPaused)
	got, err := svc.Update(context.Background(), j.ID, recruiterID, UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != job.StatusPaused {
		t.Fatalf("expected paused, got %s", got.Status)
	}
	if got.Title != j.Title || got.Company != j.Company {
		t.Fatalf("untouched fields should survive a partial update")
	}
}

func TestDelete_Ownership(t *testing.T) {
	recruiterID := uuid.New()
	j := job.Job{ID: uuid.New(), RecruiterID: recruiterID, Status: job.StatusActive}
	jobs := &stubJobs{byID: map[uuid.UUID]job.Job{j.ID: j}}
	svc := NewService(jobs, &stubUsers{}, nil, nil)

	if err := svc.Delete(context.Background(), j.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), j.ID, recruiterID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs.deleted) != 1 {
		t.Fatalf("expected one delete, got %v", jobs.deleted)
	}

	if err := svc.Delete(context.Background(), j.ID, recruiterID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
