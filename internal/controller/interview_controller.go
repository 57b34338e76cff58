package controller

import (
	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type interviewController struct {
	interviewService service.IInterviewService
}

func NewInterviewController(interviewService service.IInterviewService) IInterviewController {
	return &interviewController{
		interviewService: interviewService,
	}
}

func (c *interviewController) RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler) {
	h := r.Group("/interview/v1")
	h.Post("", c.Create)
	h.Get(":id", tokenMiddleware, c.Show)
	h.Patch(":id/status", tokenMiddleware, c.UpdateStatus)
	h.Delete(":id", serverutils.JwtMiddleware, c.Delete)
}

func (c *interviewController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create interview", res))
}

func (c *interviewController) Show(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid interview id"))
	}

	// The token middleware resolved the token to an interview. A token for
	// one interview must not open another.
	if ctx.Locals("interview_id") != id.String() {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Token does not match interview"))
	}

	res, err := c.interviewService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Interview not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show interview", res))
}

func (c *interviewController) UpdateStatus(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid interview id"))
	}

	if ctx.Locals("interview_id") != id.String() {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Token does not match interview"))
	}
	if ctx.Locals("role") != "host" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Host role required"))
	}

	var req dto.UpdateInterviewStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.UpdateStatus(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Interview not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update interview status", res))
}

func (c *interviewController) Delete(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid interview id"))
	}

	if err := c.interviewService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete interview", nil))
}
