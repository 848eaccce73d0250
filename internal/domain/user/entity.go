package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleJobseeker || r == RoleRecruiter
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// ResumeFile is stored metadata for an uploaded resume; Key addresses the
// blob in whichever storage backend is configured.
type ResumeFile struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Key          string    `json:"key"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role

	Bio      string
	Location string
	Phone    string
	Avatar   string

	// Jobseeker profile.
	Skills     []string
	Education  []Education
	Experience []Experience
	Resume     *ResumeFile

	// Recruiter profile.
	Company            string
	CompanyDescription string
	Website            string

	CreatedAt time.Time
	UpdatedAt time.Time
}
