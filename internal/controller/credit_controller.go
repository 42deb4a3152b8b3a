package controller

import (
	"careerhub-billing/internal/dto"
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
}

type creditController struct {
	service service.ICreditService
}

func NewCreditController(service service.ICreditService) ICreditController {
	return &creditController{service: service}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credits")
	h.Get("/pricing", c.GetPricing)

	// Protected Routes
	h.Get("/balances", serverutils.JwtMiddleware, c.GetBalances)
	h.Get("/history", serverutils.JwtMiddleware, c.GetHistory)
	h.Get("/check", serverutils.JwtMiddleware, c.CheckCredits)
	h.Post("/order", serverutils.JwtMiddleware, c.CreateOrder)
	h.Post("/confirm", serverutils.JwtMiddleware, c.ConfirmPurchase)
	h.Post("/consume", serverutils.JwtMiddleware, c.ConsumeCredit)
}

func (c *creditController) GetPricing(ctx *fiber.Ctx) error {
	res, err := c.service.GetPricing(ctx.Context())
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *creditController) GetBalances(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetBalances(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *creditController) GetHistory(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetTransactionHistory(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *creditController) CheckCredits(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.HasCredits(ctx.Context(), userId, ctx.Query("creditType"))
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *creditController) CreateOrder(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePurchaseOrderRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreatePurchaseOrder(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, res)
}

func (c *creditController) ConfirmPurchase(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	var req dto.ConfirmPurchaseRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ConfirmPurchase(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}

func (c *creditController) ConsumeCredit(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIdFromContext(ctx)
	if err != nil {
		return err
	}

	var req dto.ConsumeCreditRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ConsumeCredit(ctx.Context(), userId, req.CreditType, req.FeatureId)
	if err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, res)
}
