package controller

import (
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEngagementController interface {
	RegisterRoutes(r fiber.Router)
}

type engagementController struct {
	service service.IEngagementService
}

func NewEngagementController(service service.IEngagementService) IEngagementController {
	return &engagementController{service: service}
}

func (c *engagementController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/engagement")
	h.Post("/daily-login", serverutils.JwtMiddleware, c.DailyLogin)
	h.Get("/status", serverutils.JwtMiddleware, c.GetStatus)
}

func (c *engagementController) DailyLogin(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ProcessDailyLogin(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *engagementController) GetStatus(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetEngagementStatus(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}
