package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// ListFilter narrows the public listing. Keyword matches title, company,
// description and skills case-insensitively; Location is a substring match;
// Type is exact.
type ListFilter struct {
	Keyword  string
	Location string
	Type     string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	GetRecruiterSummary(ctx context.Context, recruiterID uuid.UUID) (RecruiterSummary, error)
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListActive returns the page of active jobs matching the filter plus
	// the total match count.
	ListActive(ctx context.Context, f ListFilter) ([]Job, int, error)
	ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Job, error)
}
