package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"job-connect/internal/database"
	"job-connect/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobRepository struct {
	db database.DB
}

func NewJobRepository(db database.DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, recruiter_id, title, company, location, type,
	COALESCE(salary, ''), description, requirements, skills,
	COALESCE(experience, ''), COALESCE(education, ''), deadline,
	status, applicants_count, created_at, updated_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	requirements := j.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, recruiter_id, title, company, location, type, salary,
			description, requirements, skills, experience, education, deadline, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		j.ID, j.RecruiterID, j.Title, j.Company, j.Location, string(j.Type), j.Salary,
		j.Description, requirements, skills, j.Experience, j.Education, j.Deadline,
		string(j.Status),
	)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) GetRecruiterSummary(ctx context.Context, recruiterID uuid.UUID) (job.RecruiterSummary, error) {
	var s job.RecruiterSummary
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(company, ''), COALESCE(avatar, ''), COALESCE(website, '')
		 FROM users WHERE id = $1`, recruiterID)
	if err := row.Scan(&s.ID, &s.Name, &s.Company, &s.Avatar, &s.Website); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.RecruiterSummary{}, job.ErrNotFound
		}
		return job.RecruiterSummary{}, err
	}
	return s, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	requirements := j.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}

	n, err := r.db.Exec(ctx,
		`UPDATE jobs SET title = $2, company = $3, location = $4, type = $5, salary = $6,
			description = $7, requirements = $8, skills = $9, experience = $10,
			education = $11, deadline = $12, status = $13, updated_at = now()
		 WHERE id = $1`,
		j.ID, j.Title, j.Company, j.Location, string(j.Type), j.Salary,
		j.Description, requirements, skills, j.Experience,
		j.Education, j.Deadline, string(j.Status),
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) ListActive(ctx context.Context, f job.ListFilter) ([]job.Job, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	where := []string{`status = 'active'`}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		p := arg("%" + kw + "%")
		where = append(where, fmt.Sprintf(
			`(title ILIKE %[1]s OR company ILIKE %[1]s OR description ILIKE %[1]s
			  OR EXISTS (SELECT 1 FROM unnest(skills) AS sk WHERE sk ILIKE %[1]s))`, p))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, `location ILIKE `+arg("%"+loc+"%"))
	}
	if t := strings.TrimSpace(f.Type); t != "" {
		where = append(where, `type = `+arg(t))
	}

	cond := strings.Join(where, " AND ")

	var total int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+cond, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + cond +
		` ORDER BY created_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *JobRepository) ListByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`,
		recruiterID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectJobs(rows)
}

func collectJobs(rows database.Rows) ([]job.Job, error) {
	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJobFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	j, err := scanJobFrom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

type jobScanner interface {
	Scan(dest ...any) error
}

func scanJobFrom(s jobScanner) (job.Job, error) {
	var (
		j       job.Job
		jobType string
		status  string
	)
	err := s.Scan(
		&j.ID, &j.RecruiterID, &j.Title, &j.Company, &j.Location, &jobType,
		&j.Salary, &j.Description, &j.Requirements, &j.Skills,
		&j.Experience, &j.Education, &j.Deadline,
		&status, &j.ApplicantsCount, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	j.Type = job.Type(jobType)
	j.Status = job.Status(status)
	return j, nil
}
