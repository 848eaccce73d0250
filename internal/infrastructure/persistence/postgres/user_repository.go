package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"job-connect/internal/database"
	"job-connect/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role,
	COALESCE(bio, ''), COALESCE(location, ''), COALESCE(phone, ''), COALESCE(avatar, ''),
	skills, education, experience, resume,
	COALESCE(company, ''), COALESCE(company_description, ''), COALESCE(website, ''),
	created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	education, err := json.Marshal(u.Education)
	if err != nil {
		return err
	}
	experience, err := json.Marshal(u.Experience)
	if err != nil {
		return err
	}

	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, bio, location, phone, avatar,
			skills, education, experience, company, company_description, website)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		u.ID, u.Name, u.Email, u.PasswordHash, string(u.Role),
		u.Bio, u.Location, u.Phone, u.Avatar,
		skills, education, experience,
		u.Company, u.CompanyDescription, u.Website,
	)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) Update(ctx context.Context, u user.User) error {
	education, err := json.Marshal(u.Education)
	if err != nil {
		return err
	}
	experience, err := json.Marshal(u.Experience)
	if err != nil {
		return err
	}

	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	n, err := r.db.Exec(ctx,
		`UPDATE users SET name = $2, bio = $3, location = $4, phone = $5, avatar = $6,
			skills = $7, education = $8, experience = $9,
			company = $10, company_description = $11, website = $12, updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Name, u.Bio, u.Location, u.Phone, u.Avatar,
		skills, education, experience,
		u.Company, u.CompanyDescription, u.Website,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetResume(ctx context.Context, id uuid.UUID, res user.ResumeFile) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	n, err := r.db.Exec(ctx,
		`UPDATE users SET resume = $2, updated_at = now() WHERE id = $1`, id, b)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var (
		u          user.User
		role       string
		education  []byte
		experience []byte
		resume     []byte
	)

	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role,
		&u.Bio, &u.Location, &u.Phone, &u.Avatar,
		&u.Skills, &education, &experience, &resume,
		&u.Company, &u.CompanyDescription, &u.Website,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	u.Role = user.Role(role)
	if len(education) > 0 {
		if err := json.Unmarshal(education, &u.Education); err != nil {
			return user.User{}, err
		}
	}
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &u.Experience); err != nil {
			return user.User{}, err
		}
	}
	if len(resume) > 0 {
		var rf user.ResumeFile
		if err := json.Unmarshal(resume, &rf); err != nil {
			return user.User{}, err
		}
		u.Resume = &rf
	}

	return u, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// failure, used to map racing inserts onto domain errors.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
