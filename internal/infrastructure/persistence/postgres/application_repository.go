package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"job-connect/internal/database"
	"job-connect/internal/domain/application"
	"job-connect/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository struct {
	db database.DB
}

func NewApplicationRepository(db database.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.job_id, a.applicant_id, a.recruiter_id, a.status,
	COALESCE(a.cover_letter, ''), a.resume, a.interview, COALESCE(a.recruiter_notes, ''),
	a.applied_at, a.created_at, a.updated_at`

const jobSummaryColumns = `j.id, j.title, j.company, j.location, j.type, COALESCE(j.salary, ''), j.status`

const applicantSummaryColumns = `u.id, u.name, u.email, COALESCE(u.company, '')`

func (r *ApplicationRepository) CreateWithCounter(ctx context.Context, a application.Application) error {
	resume, err := json.Marshal(a.Resume)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO applications (id, job_id, applicant_id, recruiter_id, status, cover_letter, resume)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.JobID, a.ApplicantID, a.RecruiterID, string(a.Status), a.CoverLetter, resume,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return application.ErrDuplicate
		}
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE jobs SET applicants_count = applicants_count + 1, updated_at = now() WHERE id = $1`,
		a.JobID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+`, `+jobSummaryColumns+`, `+applicantSummaryColumns+`,
			ru.id, ru.name, ru.email, COALESCE(ru.company, '')
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.applicant_id
		 JOIN users ru ON ru.id = a.recruiter_id
		 WHERE a.id = $1`, id)

	a, err := scanApplicationFull(row, true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, `+jobSummaryColumns+`, `+applicantSummaryColumns+`
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.created_at DESC`, applicantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, `+jobSummaryColumns+`, `+applicantSummaryColumns+`
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.recruiter_id = $1
		 ORDER BY a.created_at DESC`, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, status application.Status) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + `, ` + jobSummaryColumns + `, ` + applicantSummaryColumns + `
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.job_id = $1`
	args := []any{jobID}
	if status != "" {
		query += ` AND a.status = $2`
		args = append(args, string(status))
	}
	query += ` ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationRepository) Update(ctx context.Context, a application.Application) error {
	var interview any
	if a.Interview != nil {
		b, err := json.Marshal(a.Interview)
		if err != nil {
			return err
		}
		interview = b
	}

	n, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, recruiter_notes = $3, interview = $4, updated_at = now()
		 WHERE id = $1`,
		a.ID, string(a.Status), a.RecruiterNotes, interview,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return application.ErrNotFound
	}
	return nil
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplicationFull(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type applicationScanner interface {
	Scan(dest ...any) error
}

func scanApplicationFull(s applicationScanner, withRecruiter bool) (application.Application, error) {
	var (
		a         application.Application
		status    string
		resume    []byte
		interview []byte
		js        application.JobSummary
		ap        application.PartySummary
		rec       application.PartySummary
	)

	dest := []any{
		&a.ID, &a.JobID, &a.ApplicantID, &a.RecruiterID, &status,
		&a.CoverLetter, &resume, &interview, &a.RecruiterNotes,
		&a.AppliedAt, &a.CreatedAt, &a.UpdatedAt,
		&js.ID, &js.Title, &js.Company, &js.Location, &js.Type, &js.Salary, &js.Status,
		&ap.ID, &ap.Name, &ap.Email, &ap.Company,
	}
	if withRecruiter {
		dest = append(dest, &rec.ID, &rec.Name, &rec.Email, &rec.Company)
	}

	if err := s.Scan(dest...); err != nil {
		return application.Application{}, err
	}

	a.Status = application.Status(status)
	if len(resume) > 0 {
		var rf user.ResumeFile
		if err := json.Unmarshal(resume, &rf); err != nil {
			return application.Application{}, err
		}
		a.Resume = rf
	}
	if len(interview) > 0 {
		var iv application.Interview
		if err := json.Unmarshal(interview, &iv); err != nil {
			return application.Application{}, err
		}
		a.Interview = &iv
	}

	a.Job = &js
	a.Applicant = &ap
	if withRecruiter {
		a.Recruiter = &rec
	}
	return a, nil
}
