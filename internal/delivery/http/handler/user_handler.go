package handler

import (
	"encoding/json"
	"errors"
	"strings"

	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/domain/user"
	"job-connect/internal/pkg/response"
	ucuser "job-connect/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc ucuser.Usecase
}

type updateProfileRequest struct {
	Name               *string           `json:"name"`
	Bio                *string           `json:"bio"`
	Location           *string           `json:"location"`
	Phone              *string           `json:"phone"`
	Company            *string           `json:"company"`
	CompanyDescription *string           `json:"companyDescription"`
	Website            *string           `json:"website"`
	Skills             skillList         `json:"skills"`
	Education          []user.Education  `json:"education"`
	Experience         []user.Experience `json:"experience"`
}

// skillList accepts either a JSON array or a comma-separated string.
type skillList []string

func (s *skillList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = arr
		return nil
	}

	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*s = out
	return nil
}

func NewUserHandler(uc ucuser.Usecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, guards ...fiber.Handler) {
	if r == nil {
		return
	}

	first, rest := guardChain(guards, h.GetProfile)
	r.Get("/profile", first, rest...)
	first, rest = guardChain(guards, h.UpdateProfile)
	r.Put("/profile", first, rest...)
	first, rest = guardChain(guards, h.UploadResume)
	r.Post("/profile/resume", first, rest...)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.GetProfile(c.Context(), callerID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfile(usr))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, token, err := h.uc.UpdateProfile(c.Context(), callerID, ucuser.UpdateProfileInput{
		Name:               req.Name,
		Bio:                req.Bio,
		Location:           req.Location,
		Phone:              req.Phone,
		Company:            req.Company,
		CompanyDescription: req.CompanyDescription,
		Website:            req.Website,
		Skills:             req.Skills,
		Education:          req.Education,
		Experience:         req.Experience,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserSummary(usr, token))
}

func (h *UserHandler) UploadResume(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "No file uploaded", nil, err)
	}
	defer func() {
		_ = f.Close()
	}()

	res, err := h.uc.UploadResume(c.Context(), callerID, ucuser.ResumeUpload{
		OriginalName: fh.Filename,
		Content:      f,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	data := map[string]any{
		"resume": dto.ResumeResponse{
			Filename:     res.Filename,
			OriginalName: res.OriginalName,
			UploadedAt:   res.UploadedAt,
		},
	}
	return response.Success(c, fiber.StatusOK, "Resume uploaded successfully", data)
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
