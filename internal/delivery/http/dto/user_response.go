package dto

import (
	"time"

	"job-connect/internal/domain/user"

	"github.com/google/uuid"
)

type UserSummaryResponse struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Company string    `json:"company,omitempty"`
	Token   string    `json:"token"`
}

type ResumeResponse struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type ProfileResponse struct {
	ID                 uuid.UUID         `json:"_id"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Role               string            `json:"role"`
	Bio                string            `json:"bio,omitempty"`
	Location           string            `json:"location,omitempty"`
	Phone              string            `json:"phone,omitempty"`
	Avatar             string            `json:"avatar,omitempty"`
	Skills             []string          `json:"skills,omitempty"`
	Education          []user.Education  `json:"education,omitempty"`
	Experience         []user.Experience `json:"experience,omitempty"`
	Resume             *ResumeResponse   `json:"resume,omitempty"`
	Company            string            `json:"company,omitempty"`
	CompanyDescription string            `json:"companyDescription,omitempty"`
	Website            string            `json:"website,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func NewUserSummary(u user.User, token string) UserSummaryResponse {
	return UserSummaryResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    string(u.Role),
		Company: u.Company,
		Token:   token,
	}
}

func NewProfile(u user.User) ProfileResponse {
	out := ProfileResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		Bio:                u.Bio,
		Location:           u.Location,
		Phone:              u.Phone,
		Avatar:             u.Avatar,
		Skills:             u.Skills,
		Education:          u.Education,
		Experience:         u.Experience,
		Company:            u.Company,
		CompanyDescription: u.CompanyDescription,
		Website:            u.Website,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if u.Resume != nil {
		out.Resume = &ResumeResponse{
			Filename:     u.Resume.Filename,
			OriginalName: u.Resume.OriginalName,
			UploadedAt:   u.Resume.UploadedAt,
		}
	}
	return out
}
