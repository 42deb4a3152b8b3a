package controller

import (
	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
}

type subscriptionController struct {
	service service.ISubscriptionService
}

func NewSubscriptionController(service service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{service: service}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Get("/plans", c.GetPlans)

	// Protected Routes
	h.Get("/", serverutils.JwtMiddleware, c.GetCurrent)
	h.Post("/subscribe", serverutils.JwtMiddleware, c.Subscribe)
	h.Post("/cancel", serverutils.JwtMiddleware, c.Cancel)
}

func (c *subscriptionController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.service.GetPlans(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *subscriptionController) GetCurrent(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetUserSubscription(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *subscriptionController) Subscribe(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateSubscription(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, res)
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	var req dto.CancelSubscriptionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.NewError(fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		}
	}

	res, err := c.service.CancelSubscription(ctx.Context(), userId, req.Immediate)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}
