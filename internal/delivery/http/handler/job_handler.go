package handler

import (
	"errors"
	"strconv"
	"time"

	"job-connect/internal/delivery/http/dto"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/pkg/response"
	ucjob "job-connect/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc ucjob.Usecase
}

type createJobRequest struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	Salary       string     `json:"salary"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	Experience   string     `json:"experience"`
	Education    string     `json:"education"`
	Deadline     *time.Time `json:"deadline"`
	Status       string     `json:"status"`
}

type updateJobRequest struct {
	Title        *string    `json:"title"`
	Company      *string    `json:"company"`
	Location     *string    `json:"location"`
	Type         *string    `json:"type"`
	Salary       *string    `json:"salary"`
	Description  *string    `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	Experience   *string    `json:"experience"`
	Education    *string    `json:"education"`
	Deadline     *time.Time `json:"deadline"`
	Status       *string    `json:"status"`
}

func NewJobHandler(uc ucjob.Usecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterPublicRoutes wires the routes that need no identity.
func (h *JobHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

// RegisterRecruiterRoutes wires the recruiter-owned routes. Guards attach
// per-route so they never shadow the public listing on the same prefix.
func (h *JobHandler) RegisterRecruiterRoutes(r fiber.Router, guards ...fiber.Handler) {
	if r == nil {
		return
	}

	first, rest := guardChain(guards, h.ListMine)
	r.Get("/my-jobs", first, rest...)
	first, rest = guardChain(guards, h.Create)
	r.Post("/", first, rest...)
	first, rest = guardChain(guards, h.Update)
	r.Put("/:id", first, rest...)
	first, rest = guardChain(guards, h.Delete)
	r.Delete("/:id", first, rest...)
}

// guardChain orders guards ahead of the terminal handler: fiber v3 executes
// route handlers in argument order, so guards must come first to run first.
func guardChain(guards []fiber.Handler, terminal fiber.Handler) (any, []any) {
	if len(guards) == 0 {
		return terminal, nil
	}
	rest := make([]any, 0, len(guards))
	for _, g := range guards[1:] {
		rest = append(rest, g)
	}
	return guards[0], append(rest, terminal)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	page, err := parseQueryInt(c, "page", 1)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	limit, err := parseQueryInt(c, "limit", 10)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	result, err := h.uc.List(c.Context(), ucjob.ListParams{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
		Type:     c.Query("type"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	out := dto.JobPageResponse{
		Jobs:  dto.NewJobs(result.Jobs),
		Total: result.Total,
		Pages: result.Pages,
		Page:  result.Page,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	j, rec, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobWithRecruiter(j, rec))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Create(c.Context(), callerID, ucjob.CreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       req.Skills,
		Experience:   req.Experience,
		Education:    req.Education,
		Deadline:     req.Deadline,
		Status:       req.Status,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.NewJob(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	j, err := h.uc.Update(c.Context(), id, callerID, ucjob.UpdateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Type:         req.Type,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       req.Skills,
		Experience:   req.Experience,
		Education:    req.Education,
		Deadline:     req.Deadline,
		Status:       req.Status,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJob(j))
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id, callerID); err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobs, err := h.uc.ListMine(c.Context(), callerID)
	if err != nil {
		return mapJobUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobs(jobs))
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucjob.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, ucjob.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Not authorized", nil, err)
	case errors.Is(err, ucjob.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
