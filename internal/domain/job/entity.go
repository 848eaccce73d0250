package job

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeContract   Type = "Contract"
	TypeInternship Type = "Internship"
	TypeRemote     Type = "Remote"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship, TypeRemote:
		return true
	}
	return false
}

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusPaused Status = "paused"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusClosed, StatusPaused:
		return true
	}
	return false
}

type Job struct {
	ID          uuid.UUID
	RecruiterID uuid.UUID

	Title        string
	Company      string
	Location     string
	Type         Type
	Salary       string
	Description  string
	Requirements []string
	Skills       []string
	Experience   string
	Education    string
	Deadline     *time.Time

	Status          Status
	ApplicantsCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecruiterSummary is the slice of the owning recruiter's profile exposed on
// public job reads.
type RecruiterSummary struct {
	ID      uuid.UUID
	Name    string
	Company string
	Avatar  string
	Website string
}
