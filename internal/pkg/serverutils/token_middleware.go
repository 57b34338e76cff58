// FILE: internal/pkg/serverutils/token_middleware.go
package serverutils

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TokenValidator resolves an opaque interview token to its role and interview.
// Implemented by the auth service.
type TokenValidator func(ctx context.Context, token string) (role string, interviewID uuid.UUID, err error)

// InterviewTokenMiddleware guards call-scoped routes. The token comes from the
// "token" query param (browser) or the Authorization header (tooling). On
// success the role and interview id are stored in locals for the handler.
func InterviewTokenMiddleware(validate TokenValidator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := ctx.Query("token")
		if tokenStr == "" {
			authHeader := ctx.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				tokenStr = authHeader[7:]
			}
		}
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		role, interviewID, err := validate(ctx.Context(), tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid or expired token"))
		}

		ctx.Locals("role", role)
		ctx.Locals("interview_id", interviewID.String())
		return ctx.Next()
	}
}
