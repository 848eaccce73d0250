package application

import (
	"time"

	"job-connect/internal/domain/user"

	"github.com/google/uuid"
)

type InterviewType string

const (
	InterviewVideo    InterviewType = "video"
	InterviewPhone    InterviewType = "phone"
	InterviewInPerson InterviewType = "in-person"
)

func (t InterviewType) Valid() bool {
	switch t {
	case InterviewVideo, InterviewPhone, InterviewInPerson:
		return true
	}
	return false
}

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// Interview is the embedded scheduling sub-record. Scheduling overwrites it
// wholesale.
type Interview struct {
	ScheduledAt time.Time       `json:"scheduled_at"`
	Duration    int             `json:"duration"`
	Type        InterviewType   `json:"type"`
	MeetingLink string          `json:"meeting_link"`
	Notes       string          `json:"notes"`
	Status      InterviewStatus `json:"status"`
}

const DefaultInterviewDuration = 30

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	RecruiterID uuid.UUID

	Status         Status
	CoverLetter    string
	Resume         user.ResumeFile
	Interview      *Interview
	RecruiterNotes string

	AppliedAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Filled by read queries for response rendering.
	Job       *JobSummary
	Applicant *PartySummary
	Recruiter *PartySummary
}

type JobSummary struct {
	ID       uuid.UUID
	Title    string
	Company  string
	Location string
	Type     string
	Salary   string
	Status   string
}

type PartySummary struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Company string
}

// Party reports whether id is one of the two identities allowed to read this
// application.
func (a Application) Party(id uuid.UUID) bool {
	return a.ApplicantID == id || a.RecruiterID == id
}
