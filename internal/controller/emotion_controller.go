package controller

import (
	"errors"

	"bionic-interviewer-be/internal/dto"
	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEmotionController interface {
	RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler)
	Save(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type emotionController struct {
	emotionService service.IEmotionService
}

func NewEmotionController(emotionService service.IEmotionService) IEmotionController {
	return &emotionController{
		emotionService: emotionService,
	}
}

func (c *emotionController) RegisterRoutes(r fiber.Router, tokenMiddleware fiber.Handler) {
	h := r.Group("/emotion/v1")
	h.Use(tokenMiddleware)
	h.Post(":interviewId", c.Save)
	h.Get(":interviewId", c.Get)
}

func (c *emotionController) Save(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	var req dto.SaveEmotionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.InterviewId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.emotionService.Save(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInterviewNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Interview not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save emotions", res))
}

func (c *emotionController) Get(ctx *fiber.Ctx) error {
	id, err := guardInterviewParam(ctx)
	if id == uuid.Nil {
		return err
	}

	if ctx.Locals("role") != "host" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Host role required"))
	}

	res, err := c.emotionService.Get(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Emotion data not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get emotions", res))
}
