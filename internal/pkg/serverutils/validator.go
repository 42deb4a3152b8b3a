package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest parses the JSON body into out and runs struct
// validation. Returns a 400 AppError describing the first bad field.
func ValidateRequest(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return NewError(fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			msg := fmt.Sprintf("Field '%s' failed on rule '%s'", strings.ToLower(f.Field()), f.Tag())
			return NewError(fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
		}
		return NewError(fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
	}

	return nil
}
