package ws

import (
	"log"
	"net/http"

	"job-connect/internal/domain/application"
	"job-connect/internal/pkg/jwt"
	ucapp "job-connect/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades interview-room connections. Browsers cannot set an
// Authorization header on a websocket dial, so the token rides in the
// `token` query parameter.
type Handler struct {
	hub    *Hub
	apps   ucapp.Usecase
	jwt    jwt.Service
	logger *log.Logger
}

func NewHandler(hub *Hub, apps ucapp.Usecase, jwtSvc jwt.Service, logger *log.Logger) *Handler {
	return &Handler{hub: hub, apps: apps, jwt: jwtSvc, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/:id/ws", h.HandleInterviewWS)
}

func (h *Handler) HandleInterviewWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	claims, err := h.jwt.ValidateToken(c.Query("token"))
	if err != nil {
		return fiber.ErrUnauthorized
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrNotFound
	}

	// Get enforces that the caller is a party to the application.
	a, err := h.apps.Get(c.Context(), appID, claims.UserID)
	if err != nil {
		return fiber.ErrForbidden
	}
	if a.Status != application.StatusInterviewScheduled {
		return fiber.ErrBadRequest
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | error=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, appID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
