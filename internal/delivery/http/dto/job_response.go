package dto

import (
	"time"

	"job-connect/internal/domain/job"

	"github.com/google/uuid"
)

type JobResponse struct {
	ID              uuid.UUID          `json:"_id"`
	Title           string             `json:"title"`
	Company         string             `json:"company"`
	Location        string             `json:"location"`
	Type            string             `json:"type"`
	Salary          string             `json:"salary,omitempty"`
	Description     string             `json:"description"`
	Requirements    []string           `json:"requirements"`
	Skills          []string           `json:"skills"`
	Experience      string             `json:"experience,omitempty"`
	Education       string             `json:"education,omitempty"`
	Deadline        *time.Time         `json:"deadline,omitempty"`
	Status          string             `json:"status"`
	ApplicantsCount int                `json:"applicantsCount"`
	Recruiter       *RecruiterResponse `json:"recruiter,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type RecruiterResponse struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Company string    `json:"company,omitempty"`
	Avatar  string    `json:"avatar,omitempty"`
	Website string    `json:"website,omitempty"`
}

type JobPageResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int           `json:"total"`
	Pages int           `json:"pages"`
	Page  int           `json:"page"`
}

func NewJob(j job.Job) JobResponse {
	requirements := j.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		Type:            string(j.Type),
		Salary:          j.Salary,
		Description:     j.Description,
		Requirements:    requirements,
		Skills:          skills,
		Experience:      j.Experience,
		Education:       j.Education,
		Deadline:        j.Deadline,
		Status:          string(j.Status),
		ApplicantsCount: j.ApplicantsCount,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
}

func NewJobWithRecruiter(j job.Job, r job.RecruiterSummary) JobResponse {
	out := NewJob(j)
	out.Recruiter = &RecruiterResponse{
		ID:      r.ID,
		Name:    r.Name,
		Company: r.Company,
		Avatar:  r.Avatar,
		Website: r.Website,
	}
	return out
}

func NewJobs(jobs []job.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJob(j))
	}
	return out
}
