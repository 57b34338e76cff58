package controller

import (
	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICaptureController interface {
	RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler)
	Start(ctx *fiber.Ctx) error
	AppendTranscription(ctx *fiber.Ctx) error
	AppendDetection(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Discard(ctx *fiber.Ctx) error
}

type captureController struct {
	captureService service.ICaptureService
}

func NewCaptureController(captureService service.ICaptureService) ICaptureController {
	return &captureController{
		captureService: captureService,
	}
}

func (c *captureController) RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler) {
	h := r.Group("/capture/v1")
	h.Use(tokenMiddleware)
	h.Post(":interviewId/start", c.Start)
	h.Post(":interviewId/transcription", c.AppendTranscription)
	h.Post(":interviewId/detection", c.AppendDetection)
	h.Post(":interviewId/complete", c.Complete)
	h.Delete(":interviewId", c.Discard)
}

func (c *captureController) Start(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	var req dto.StartCaptureRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return err
	}
	req.InterviewId = id

	if err := c.captureService.Start(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success start capture", nil))
}

func (c *captureController) AppendTranscription(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	var req dto.AppendTranscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.InterviewId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.captureService.AppendTranscription(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success append transcription", nil))
}

func (c *captureController) AppendDetection(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	var req dto.AppendDetectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.InterviewId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.captureService.AppendDetection(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success append detection", nil))
}

func (c *captureController) Complete(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	res, err := c.captureService.Complete(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success complete capture", res))
}

func (c *captureController) Discard(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	if err := c.captureService.Discard(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success discard capture", nil))
}
