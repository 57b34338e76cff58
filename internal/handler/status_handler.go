package handler

import (
	"bionic-interviewer-be/internal/pkg/logger"
	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/service"
	internalWS "bionic-interviewer-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// StatusHandler upgrades call participants to a websocket feed of interview
// status updates. The connection is authorized by interview token, same as
// the REST routes.
type StatusHandler struct {
	authService service.IAuthService
	hub         *internalWS.Hub
	logger      logger.ILogger
}

func NewStatusHandler(authService service.IAuthService, hub *internalWS.Hub, log logger.ILogger) *StatusHandler {
	return &StatusHandler{
		authService: authService,
		hub:         hub,
		logger:      log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *StatusHandler) ServeWs(c *fiber.Ctx) error {
	// Priority 1: Query Param (Browser standard)
	tokenStr := c.Query("token")

	// Priority 2: Authorization Header (Tooling/Non-browser standard)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	resolved, err := h.authService.ValidateToken(c.Context(), tokenStr)
	if err != nil {
		h.logger.Warn("StatusHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err.Error()})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	interviewID := resolved.InterviewId
	role := resolved.Role

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("StatusHandler", "Starting WebSocket session", map[string]interface{}{"interview_id": interviewID, "role": role})
			internalWS.ServeWs(h.hub, conn, interviewID, role)
			h.logger.Info("StatusHandler", "WebSocket session ended", map[string]interface{}{"interview_id": interviewID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the status websocket route.
func (h *StatusHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
