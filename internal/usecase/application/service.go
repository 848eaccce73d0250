package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/user"
	"job-connect/internal/infrastructure/storage"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrJobNotFound       = errors.New("job not found")
	ErrJobInactive       = errors.New("job is no longer accepting applications")
	ErrAlreadyApplied    = errors.New("already applied for this job")
	ErrResumeRequired    = errors.New("resume is required")
	ErrResumeMissing     = errors.New("resume file not found in storage")
	ErrForbidden         = errors.New("not a party to this application")
	ErrInvalidStatus     = errors.New("invalid application status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInternal          = errors.New("internal error")
)

type ResumeUpload struct {
	OriginalName string
	Content      io.Reader
}

type ApplyInput struct {
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	CoverLetter string
	Resume      *ResumeUpload
}

// UpdateStatusInput is partial: nil fields are left untouched.
type UpdateStatusInput struct {
	Status         *string
	RecruiterNotes *string
}

type ScheduleInput struct {
	ScheduledAt time.Time
	Duration    int
	Type        string
	Notes       string
}

type Usecase interface {
	Apply(ctx context.Context, in ApplyInput) (application.Application, error)
	Get(ctx context.Context, id, callerID uuid.UUID) (application.Application, error)
	ListForApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)
	ListForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.Application, error)
	ListForJob(ctx context.Context, jobID, recruiterID uuid.UUID, status string) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id, recruiterID uuid.UUID, in UpdateStatusInput) (application.Application, error)
	ScheduleInterview(ctx context.Context, id, recruiterID uuid.UUID, in ScheduleInput) (application.Application, error)
	OpenResume(ctx context.Context, id, callerID uuid.UUID) (user.ResumeFile, io.ReadCloser, error)
}

type Service struct {
	apps        application.Repository
	jobs        job.Repository
	files       storage.Store
	frontendURL string
}

func NewService(apps application.Repository, jobs job.Repository, files storage.Store, frontendURL string) *Service {
	return &Service{
		apps:        apps,
		jobs:        jobs,
		files:       files,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

func (s *Service) Apply(ctx context.Context, in ApplyInput) (application.Application, error) {
	if in.Resume == nil || in.Resume.Content == nil || strings.TrimSpace(in.Resume.OriginalName) == "" {
		return application.Application{}, ErrResumeRequired
	}

	j, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	if j.Status != job.StatusActive {
		return application.Application{}, ErrJobInactive
	}

	key := storage.NewKey("resumes", in.Resume.OriginalName)
	if err := s.files.Save(ctx, key, in.Resume.Content); err != nil {
		return application.Application{}, ErrInternal
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       j.ID,
		ApplicantID: in.ApplicantID,
		RecruiterID: j.RecruiterID,
		Status:      application.StatusApplied,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		Resume: user.ResumeFile{
			Filename:     key[strings.LastIndex(key, "/")+1:],
			OriginalName: in.Resume.OriginalName,
			Key:          key,
			UploadedAt:   time.Now().UTC(),
		},
	}

	if err := s.apps.CreateWithCounter(ctx, a); err != nil {
		_ = s.files.Delete(ctx, key)
		if errors.Is(err, application.ErrDuplicate) {
			return application.Application{}, ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}

	created, err := s.apps.GetByID(ctx, a.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID) (application.Application, error) {
	a, err := s.getOwned(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if !a.Party(callerID) {
		return application.Application{}, ErrForbidden
	}
	return a, nil
}

func (s *Service) ListForApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

func (s *Service) ListForRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.Application, error) {
	rows, err := s.apps.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

func (s *Service) ListForJob(ctx context.Context, jobID, recruiterID uuid.UUID, status string) ([]application.Application, error) {
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, ErrInternal
	}
	if j.RecruiterID != recruiterID {
		return nil, ErrForbidden
	}

	var st application.Status
	if status = strings.TrimSpace(status); status != "" {
		st = application.Status(status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
	}

	rows, err := s.apps.ListByJob(ctx, jobID, st)
	if err != nil {
		return nil, ErrInternal
	}
	return rows, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, recruiterID uuid.UUID, in UpdateStatusInput) (application.Application, error) {
	a, err := s.getOwned(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if a.RecruiterID != recruiterID {
		return application.Application{}, ErrForbidden
	}

	if in.Status != nil {
		next := application.Status(strings.TrimSpace(*in.Status))
		if !next.Valid() {
			return application.Application{}, ErrInvalidStatus
		}
		// Interview Scheduled is only reachable through scheduling.
		if next == application.StatusInterviewScheduled && a.Status != next {
			return application.Application{}, ErrInvalidTransition
		}
		if !application.CanTransition(a.Status, next) {
			return application.Application{}, ErrInvalidTransition
		}
		a.Status = next
	}
	if in.RecruiterNotes != nil {
		a.RecruiterNotes = strings.TrimSpace(*in.RecruiterNotes)
	}

	if err := s.apps.Update(ctx, a); err != nil {
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// ScheduleInterview overwrites the interview sub-record wholesale and forces
// the application into Interview Scheduled.
func (s *Service) ScheduleInterview(ctx context.Context, id, recruiterID uuid.UUID, in ScheduleInput) (application.Application, error) {
	a, err := s.getOwned(ctx, id)
	if err != nil {
		return application.Application{}, err
	}
	if a.RecruiterID != recruiterID {
		return application.Application{}, ErrForbidden
	}
	if a.Status.Terminal() {
		return application.Application{}, ErrInvalidTransition
	}

	if in.ScheduledAt.IsZero() {
		return application.Application{}, ErrInvalidInput
	}
	duration := in.Duration
	if duration <= 0 {
		duration = application.DefaultInterviewDuration
	}
	ivType := application.InterviewType(strings.TrimSpace(in.Type))
	if ivType == "" {
		ivType = application.InterviewVideo
	}
	if !ivType.Valid() {
		return application.Application{}, ErrInvalidInput
	}

	a.Interview = &application.Interview{
		ScheduledAt: in.ScheduledAt.UTC(),
		Duration:    duration,
		Type:        ivType,
		MeetingLink: fmt.Sprintf("%s/interview/%s", s.frontendURL, a.ID),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      application.InterviewScheduled,
	}
	a.Status = application.StatusInterviewScheduled

	if err := s.apps.Update(ctx, a); err != nil {
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// OpenResume streams the stored resume to either party. A missing blob with
// intact metadata surfaces as ErrResumeMissing; the divergence is reported,
// not repaired.
func (s *Service) OpenResume(ctx context.Context, id, callerID uuid.UUID) (user.ResumeFile, io.ReadCloser, error) {
	a, err := s.getOwned(ctx, id)
	if err != nil {
		return user.ResumeFile{}, nil, err
	}
	if !a.Party(callerID) {
		return user.ResumeFile{}, nil, ErrForbidden
	}
	if a.Resume.Key == "" {
		return user.ResumeFile{}, nil, ErrResumeMissing
	}

	rc, err := s.files.Open(ctx, a.Resume.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return user.ResumeFile{}, nil, ErrResumeMissing
		}
		return user.ResumeFile{}, nil, ErrInternal
	}
	return a.Resume, rc, nil
}

func (s *Service) getOwned(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}
