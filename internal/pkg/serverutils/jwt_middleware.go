package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ErrorResponse(ctx, fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing token")
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ErrorResponse(ctx, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrorResponse(ctx, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid claims")
	}

	rawId, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(rawId)
	if err != nil {
		return ErrorResponse(ctx, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid claims")
	}

	ctx.Locals("user_id", userId)
	if email, ok := claims["email"].(string); ok {
		ctx.Locals("email", email)
	}
	return ctx.Next()
}

// UserIdFromContext reads the authenticated user id set by JwtMiddleware.
func UserIdFromContext(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, ok := ctx.Locals("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, NewError(fiber.StatusUnauthorized, "UNAUTHORIZED", "Missing authentication")
	}
	return id, nil
}
