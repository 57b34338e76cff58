package controller

import (
	"errors"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITranscriptController interface {
	RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler)
	Save(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type transcriptController struct {
	transcriptService service.ITranscriptService
}

func NewTranscriptController(transcriptService service.ITranscriptService) ITranscriptController {
	return &transcriptController{
		transcriptService: transcriptService,
	}
}

func (c *transcriptController) RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler) {
	h := r.Group("/transcript/v1")
	h.Use(tokenMiddleware)
	h.Post(":interviewId", c.Save)
	h.Get(":interviewId", c.Get)
}

func guardInterviewParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("interviewId"))
	if err != nil {
		return uuid.Nil, ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid interview id"))
	}
	if ctx.Locals("interview_id") != id.String() {
		return uuid.Nil, ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Token does not match interview"))
	}
	return id, nil
}

func (c *transcriptController) Save(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	var req dto.SaveTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.InterviewId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.transcriptService.Save(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Interview not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save transcript", res))
}

func (c *transcriptController) Get(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	// Only the host reviews the briefing afterwards.
	if ctx.Locals("role") != "host" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Host role required"))
	}

	res, err := c.transcriptService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Transcript not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}
