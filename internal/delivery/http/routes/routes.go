package routes

import (
	"log"

	"job-connect/internal/config"
	"job-connect/internal/database"
	"job-connect/internal/delivery/http/handler"
	"job-connect/internal/delivery/http/middleware"
	"job-connect/internal/infrastructure/cache"
	"job-connect/internal/infrastructure/persistence/postgres"
	"job-connect/internal/infrastructure/storage"
	"job-connect/internal/pkg/jwt"
	ucapp "job-connect/internal/usecase/application"
	ucauth "job-connect/internal/usecase/auth"
	ucjob "job-connect/internal/usecase/job"
	ucuser "job-connect/internal/usecase/user"
	"job-connect/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Store  storage.Store
	Hub    *ws.Hub
	Logger *log.Logger
}

type Registry struct {
	health     *handler.HealthHandler
	auth       *handler.AuthHandler
	users      *handler.UserHandler
	jobs       *handler.JobHandler
	apps       *handler.ApplicationHandler
	interviews *ws.Handler
	authMw     *middleware.AuthMiddleware
}

func NewRegistry(d Deps) *Registry {
	jwtSvc := jwt.NewHMACService(d.Config.JWT.Secret, d.Config.JWT.ExpiresIn)

	userRepo := postgres.NewUserRepository(d.DB)
	jobRepo := postgres.NewJobRepository(d.DB)
	appRepo := postgres.NewApplicationRepository(d.DB)

	authUC := ucauth.NewService(userRepo, jwtSvc)
	userUC := ucuser.NewService(userRepo, d.Store, jwtSvc)
	jobUC := ucjob.NewService(jobRepo, userRepo, d.Cache, d.Logger)
	appUC := ucapp.NewService(appRepo, jobRepo, d.Store, d.Config.App.FrontendURL)

	return &Registry{
		health:     handler.NewHealthHandler(d.DB),
		auth:       handler.NewAuthHandler(authUC),
		users:      handler.NewUserHandler(userUC),
		jobs:       handler.NewJobHandler(jobUC),
		apps:       handler.NewApplicationHandler(appUC),
		interviews: ws.NewHandler(d.Hub, appUC, jwtSvc, d.Logger),
		authMw:     middleware.NewAuthMiddleware(jwtSvc),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	// Guards attach per route, never as group middleware: a handler mounted on
	// the group prefix would run for the public routes sharing it.
	users := api.Group("/users")
	r.auth.RegisterRoutes(users)
	r.users.RegisterRoutes(users, r.authMw.Middleware())

	// Recruiter routes first: "/my-jobs" must win over the public "/:id".
	jobs := api.Group("/jobs")
	r.jobs.RegisterRecruiterRoutes(jobs, r.authMw.Middleware(), middleware.RecruiterOnly())
	r.jobs.RegisterPublicRoutes(jobs)

	r.apps.RegisterRoutes(api.Group("/applications", r.authMw.Middleware()))

	// Websocket auth rides in the token query parameter, not a header.
	r.interviews.RegisterRoutes(api.Group("/interviews"))
}
