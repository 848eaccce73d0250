package job

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"job-connect/internal/domain/job"
	"job-connect/internal/domain/user"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrForbidden    = errors.New("not the owner of this job")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// ListingCache is the slice of the Redis cache the catalog uses.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type ListParams struct {
	Keyword  string
	Location string
	Type     string
	Page     int
	Limit    int
}

// Page is the public listing envelope.
type Page struct {
	Jobs  []job.Job `json:"jobs"`
	Total int       `json:"total"`
	Pages int       `json:"pages"`
	Page  int       `json:"page"`
}

type CreateInput struct {
	Title        string
	Company      string
	Location     string
	Type         string
	Salary       string
	Description  string
	Requirements []string
	Skills       []string
	Experience   string
	Education    string
	Deadline     *time.Time
	Status       string
}

// UpdateInput is partial: nil fields keep their stored value.
type UpdateInput struct {
	Title        *string
	Company      *string
	Location     *string
	Type         *string
	Salary       *string
	Description  *string
	Requirements []string
	Skills       []string
	Experience   *string
	Education    *string
	Deadline     *time.Time
	Status       *string
}

type Usecase interface {
	List(ctx context.Context, p ListParams) (Page, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, job.RecruiterSummary, error)
	Create(ctx context.Context, recruiterID uuid.UUID, in CreateInput) (job.Job, error)
	Update(ctx context.Context, id, recruiterID uuid.UUID, in UpdateInput) (job.Job, error)
	Delete(ctx context.Context, id, recruiterID uuid.UUID) error
	ListMine(ctx context.Context, recruiterID uuid.UUID) ([]job.Job, error)
}

type Service struct {
	jobs   job.Repository
	users  user.Repository
	cache  ListingCache
	logger *log.Logger
}

func NewService(jobs job.Repository, users user.Repository, cache ListingCache, logger *log.Logger) *Service {
	return &Service{jobs: jobs, users: users, cache: cache, logger: logger}
}

func (s *Service) List(ctx context.Context, p ListParams) (Page, error) {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	f := job.ListFilter{
		Keyword:  strings.TrimSpace(p.Keyword),
		Location: strings.TrimSpace(p.Location),
		Type:     strings.TrimSpace(p.Type),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	key := listingCacheKey(f, page)
	if s.cache != nil {
		var cached Page
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			if s.logger != nil {
				s.logger.Printf("[Jobs] Cache HIT: %s", key)
			}
			return cached, nil
		}
	}

	rows, total, err := s.jobs.ListActive(ctx, f)
	if err != nil {
		return Page{}, ErrInternal
	}

	pages := 0
	if total > 0 {
		pages = (total + limit - 1) / limit
	}

	out := Page{Jobs: rows, Total: total, Pages: pages, Page: page}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (job.Job, job.RecruiterSummary, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, job.RecruiterSummary{}, ErrNotFound
		}
		return job.Job{}, job.RecruiterSummary{}, ErrInternal
	}

	rec, err := s.jobs.GetRecruiterSummary(ctx, j.RecruiterID)
	if err != nil {
		return job.Job{}, job.RecruiterSummary{}, ErrInternal
	}
	return j, rec, nil
}

func (s *Service) Create(ctx context.Context, recruiterID uuid.UUID, in CreateInput) (job.Job, error) {
	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	description := strings.TrimSpace(in.Description)
	if title == "" || location == "" || description == "" {
		return job.Job{}, ErrInvalidInput
	}

	jobType := job.Type(strings.TrimSpace(in.Type))
	if jobType == "" {
		jobType = job.TypeFullTime
	}
	if !jobType.Valid() {
		return job.Job{}, ErrInvalidInput
	}

	status := job.Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = job.StatusActive
	}
	if !status.Valid() {
		return job.Job{}, ErrInvalidInput
	}

	// Company falls back to the recruiter's profile company.
	company := strings.TrimSpace(in.Company)
	if company == "" {
		u, err := s.users.GetByID(ctx, recruiterID)
		if err != nil {
			return job.Job{}, ErrInternal
		}
		company = u.Company
	}
	if company == "" {
		return job.Job{}, ErrInvalidInput
	}

	j := job.Job{
		ID:           uuid.New(),
		RecruiterID:  recruiterID,
		Title:        title,
		Company:      company,
		Location:     location,
		Type:         jobType,
		Salary:       strings.TrimSpace(in.Salary),
		Description:  description,
		Requirements: in.Requirements,
		Skills:       in.Skills,
		Experience:   strings.TrimSpace(in.Experience),
		Education:    strings.TrimSpace(in.Education),
		Deadline:     in.Deadline,
		Status:       status,
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, ErrInternal
	}

	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, ErrInternal
	}

	s.invalidateListings(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id, recruiterID uuid.UUID, in UpdateInput) (job.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	if j.RecruiterID != recruiterID {
		return job.Job{}, ErrForbidden
	}

	applyString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	applyString(&j.Title, in.Title)
	applyString(&j.Company, in.Company)
	applyString(&j.Location, in.Location)
	applyString(&j.Salary, in.Salary)
	applyString(&j.Description, in.Description)
	applyString(&j.Experience, in.Experience)
	applyString(&j.Education, in.Education)

	if in.Type != nil {
		t := job.Type(strings.TrimSpace(*in.Type))
		if !t.Valid() {
			return job.Job{}, ErrInvalidInput
		}
		j.Type = t
	}
	if in.Status != nil {
		st := job.Status(strings.TrimSpace(*in.Status))
		if !st.Valid() {
			return job.Job{}, ErrInvalidInput
		}
		j.Status = st
	}
	if in.Requirements != nil {
		j.Requirements = in.Requirements
	}
	if in.Skills != nil {
		j.Skills = in.Skills
	}
	if in.Deadline != nil {
		j.Deadline = in.Deadline
	}

	if j.Title == "" || j.Location == "" || j.Description == "" || j.Company == "" {
		return job.Job{}, ErrInvalidInput
	}

	if err := s.jobs.Update(ctx, j); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	s.invalidateListings(ctx)
	return j, nil
}

func (s *Service) Delete(ctx context.Context, id, recruiterID uuid.UUID) error {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	if j.RecruiterID != recruiterID {
		return ErrForbidden
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *Service) ListMine(ctx context.Context, recruiterID uuid.UUID) ([]job.Job, error) {
	rows, err := s.jobs.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

func (s *Service) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "jobs:list:*"); err != nil && s.logger != nil {
		s.logger.Printf("[Jobs] Cache invalidation error: %v", err)
	}
}

func listingCacheKey(f job.ListFilter, page int) string {
	raw := fmt.Sprintf("kw=%s|loc=%s|type=%s|page=%d|limit=%d",
		strings.ToLower(f.Keyword), strings.ToLower(f.Location), f.Type, page, f.Limit)
	h := sha256.Sum256([]byte(raw))
	return "jobs:list:" + hex.EncodeToString(h[:8])
}
