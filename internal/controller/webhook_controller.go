package controller

import (
	"careerhub-billing/internal/pkg/serverutils"
	"careerhub-billing/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
}

type webhookController struct {
	subscriptions service.ISubscriptionService
}

func NewWebhookController(subscriptions service.ISubscriptionService) IWebhookController {
	return &webhookController{subscriptions: subscriptions}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	r.Post("/webhook", c.HandleWebhook)
}

// HandleWebhook verifies the raw body against the signature header
// before any parsing. The body must not be re-serialized first.
func (c *webhookController) HandleWebhook(ctx *fiber.Ctx) error {
	body := ctx.Body()
	signature := ctx.Get("x-razorpay-signature")
	eventId := ctx.Get("x-razorpay-event-id")

	if err := c.subscriptions.HandleWebhookEvent(ctx.Context(), body, signature, eventId); err != nil {
		return err
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, fiber.Map{"received": true})
}
