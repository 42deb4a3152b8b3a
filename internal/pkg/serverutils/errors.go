package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is the error type services return. The error handler
// middleware turns it into the HTTP envelope.
type AppError struct {
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewError(status int, code, message string) *AppError {
	return &AppError{
		Message: message,
		Status:  status,
		Code:    code,
	}
}

// Stable machine-readable codes shared with API clients.
var (
	ErrUserNotFound         = NewError(fiber.StatusNotFound, "USER_NOT_FOUND", "User not found")
	ErrEmailNotVerified     = NewError(fiber.StatusForbidden, "EMAIL_NOT_VERIFIED", "Please verify your email before using credits")
	ErrInsufficientCredits  = NewError(fiber.StatusPaymentRequired, "INSUFFICIENT_CREDITS", "Insufficient credits")
	ErrInvalidCreditType    = NewError(fiber.StatusBadRequest, "INVALID_CREDIT_TYPE", "Invalid credit type")
	ErrPlanNotFound         = NewError(fiber.StatusNotFound, "PLAN_NOT_FOUND", "Subscription plan not found")
	ErrPlanNotConfigured    = NewError(fiber.StatusConflict, "PLAN_NOT_CONFIGURED", "Plan is not configured for this billing cycle")
	ErrSubscriptionExists   = NewError(fiber.StatusConflict, "SUBSCRIPTION_EXISTS", "A subscription payment is already in progress")
	ErrAlreadySubscribed    = NewError(fiber.StatusConflict, "ALREADY_SUBSCRIBED", "You are already subscribed to this plan")
	ErrCancelRequired       = NewError(fiber.StatusConflict, "CANCEL_REQUIRED", "Cancel your current subscription before switching plans")
	ErrNoActiveSubscription = NewError(fiber.StatusNotFound, "NO_ACTIVE_SUBSCRIPTION", "No active subscription to cancel")
	ErrPaymentUnavailable   = NewError(fiber.StatusServiceUnavailable, "PAYMENT_UNAVAILABLE", "Payment service is not configured")
	ErrInvalidSignature     = NewError(fiber.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
	ErrInvalidCoupon        = NewError(fiber.StatusBadRequest, "INVALID_COUPON", "Invalid coupon code")
	ErrCouponInactive       = NewError(fiber.StatusBadRequest, "COUPON_INACTIVE", "This coupon is no longer active")
	ErrCouponExpired        = NewError(fiber.StatusBadRequest, "COUPON_EXPIRED", "This coupon has expired")
	ErrCouponLimitReached   = NewError(fiber.StatusBadRequest, "COUPON_LIMIT_REACHED", "This coupon has reached its usage limit")
	ErrCouponTypeMismatch   = NewError(fiber.StatusBadRequest, "COUPON_TYPE_MISMATCH", "This coupon cannot be applied to this purchase")
	ErrCouponAlreadyUsed    = NewError(fiber.StatusBadRequest, "COUPON_ALREADY_USED", "You have already used this coupon")
)
