package handler

import (
	"errors"
	"fmt"
	"time"

	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/pkg/response"
	ucapp "job-connect/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc ucapp.Usecase
}

type updateStatusRequest struct {
	Status         *string `json:"status"`
	RecruiterNotes *string `json:"recruiterNotes"`
}

type scheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    int       `json:"duration"`
	Type        string    `json:"type"`
	Notes       string    `json:"notes"`
}

func NewApplicationHandler(uc ucapp.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterRoutes expects a group already behind the auth middleware. Literal
// segments are wired before the ":id" routes so they keep precedence.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/my", middleware.JobseekerOnly(), h.ListMine)
	r.Get("/recruiter", middleware.RecruiterOnly(), h.ListForRecruiter)
	r.Post("/job/:jobId", middleware.JobseekerOnly(), h.Apply)
	r.Get("/job/:jobId", middleware.RecruiterOnly(), h.ListForJob)
	r.Put("/:id/status", middleware.RecruiterOnly(), h.UpdateStatus)
	r.Put("/:id/interview", middleware.RecruiterOnly(), h.ScheduleInterview)
	r.Get("/:id/resume", h.DownloadResume)
	r.Get("/:id", h.Get)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	in := ucapp.ApplyInput{
		JobID:       jobID,
		ApplicantID: callerID,
		CoverLetter: c.FormValue("coverLetter"),
	}

	if fh, err := c.FormFile("resume"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Resume is required", nil, err)
		}
		defer func() {
			_ = f.Close()
		}()
		in.Resume = &ucapp.ResumeUpload{OriginalName: fh.Filename, Content: f}
	}

	a, err := h.uc.Apply(c.Context(), in)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewApplication(a))
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	apps, err := h.uc.ListForApplicant(c.Context(), callerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplications(apps))
}

func (h *ApplicationHandler) ListForRecruiter(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	apps, err := h.uc.ListForRecruiter(c.Context(), callerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplications(apps))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	apps, err := h.uc.ListForJob(c.Context(), jobID, callerID, c.Query("status"))
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplications(apps))
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	}

	a, err := h.uc.Get(c.Context(), id, callerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplication(a))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	}

	var req updateStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), id, callerID, ucapp.UpdateStatusInput{
		Status:         req.Status,
		RecruiterNotes: req.RecruiterNotes,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplication(a))
}

func (h *ApplicationHandler) ScheduleInterview(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	}

	var req scheduleInterviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	a, err := h.uc.ScheduleInterview(c.Context(), id, callerID, ucapp.ScheduleInput{
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		Type:        req.Type,
		Notes:       req.Notes,
	})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplication(a))
}

func (h *ApplicationHandler) DownloadResume(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	}

	meta, rc, err := h.uc.OpenResume(c.Context(), id, callerID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	defer func() {
		_ = rc.Close()
	}()

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", meta.OriginalName))
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(rc)
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucapp.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, ucapp.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucapp.ErrResumeMissing):
		return middleware.NewAppError(fiber.StatusNotFound, "Resume file not found on server", nil, err)
	case errors.Is(err, ucapp.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil, err)
	case errors.Is(err, ucapp.ErrJobInactive):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job is no longer accepting applications", nil, err)
	case errors.Is(err, ucapp.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusBadRequest, "You have already applied for this job", nil, err)
	case errors.Is(err, ucapp.ErrResumeRequired):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume is required", nil, err)
	case errors.Is(err, ucapp.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	case errors.Is(err, ucapp.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusBadRequest, "Status transition not allowed", nil, err)
	case errors.Is(err, ucapp.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
