package controller

import (
	"errors"

	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	ValidateToken(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Get("validate-token", c.ValidateToken)
}

func (c *authController) ValidateToken(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	if token == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing token query param"))
	}

	res, err := c.authService.ValidateToken(ctx.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success validate token", res))
}
