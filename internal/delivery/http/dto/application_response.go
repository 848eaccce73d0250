package dto

import (
	"time"

	"job-connect/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID             uuid.UUID            `json:"_id"`
	Job            *JobSummaryResponse  `json:"job,omitempty"`
	Applicant      *PartyResponse       `json:"applicant,omitempty"`
	Recruiter      *PartyResponse       `json:"recruiter,omitempty"`
	Status         string               `json:"status"`
	CoverLetter    string               `json:"coverLetter,omitempty"`
	Resume         *ResumeResponse      `json:"resume,omitempty"`
	Interview      *InterviewResponse   `json:"interview,omitempty"`
	RecruiterNotes string               `json:"recruiterNotes,omitempty"`
	AppliedAt      time.Time            `json:"appliedAt"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

type JobSummaryResponse struct {
	ID       uuid.UUID `json:"_id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Type     string    `json:"type,omitempty"`
	Salary   string    `json:"salary,omitempty"`
	Status   string    `json:"status,omitempty"`
}

type PartyResponse struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Company string    `json:"company,omitempty"`
}

type InterviewResponse struct {
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    int       `json:"duration"`
	Type        string    `json:"type"`
	MeetingLink string    `json:"meetingLink"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
}

func NewApplication(a application.Application) ApplicationResponse {
	out := ApplicationResponse{
		ID:             a.ID,
		Status:         string(a.Status),
		CoverLetter:    a.CoverLetter,
		RecruiterNotes: a.RecruiterNotes,
		AppliedAt:      a.AppliedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if a.Resume.Key != "" {
		out.Resume = &ResumeResponse{
			Filename:     a.Resume.Filename,
			OriginalName: a.Resume.OriginalName,
			UploadedAt:   a.Resume.UploadedAt,
		}
	}
	if a.Interview != nil {
		out.Interview = &InterviewResponse{
			ScheduledAt: a.Interview.ScheduledAt,
			Duration:    a.Interview.Duration,
			Type:        string(a.Interview.Type),
			MeetingLink: a.Interview.MeetingLink,
			Notes:       a.Interview.Notes,
			Status:      string(a.Interview.Status),
		}
	}
	if a.Job != nil {
		out.Job = &JobSummaryResponse{
			ID:       a.Job.ID,
			Title:    a.Job.Title,
			Company:  a.Job.Company,
			Location: a.Job.Location,
			Type:     a.Job.Type,
			Salary:   a.Job.Salary,
			Status:   a.Job.Status,
		}
	}
	if a.Applicant != nil {
		out.Applicant = &PartyResponse{
			ID:      a.Applicant.ID,
			Name:    a.Applicant.Name,
			Email:   a.Applicant.Email,
			Company: a.Applicant.Company,
		}
	}
	if a.Recruiter != nil {
		out.Recruiter = &PartyResponse{
			ID:      a.Recruiter.ID,
			Name:    a.Recruiter.Name,
			Email:   a.Recruiter.Email,
			Company: a.Recruiter.Company,
		}
	}
	return out
}

func NewApplications(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplication(a))
	}
	return out
}
