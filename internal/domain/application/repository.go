package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("application already exists for this job and applicant")
)

type Repository interface {
	// CreateWithCounter inserts the application and increments the job's
	// applicants_count in one transaction. Returns ErrDuplicate when the
	// (job, applicant) pair already has an application.
	CreateWithCounter(ctx context.Context, a Application) error

	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, status Status) ([]Application, error)

	// Update persists status, recruiter notes and the interview sub-record.
	Update(ctx context.Context, a Application) error
}
