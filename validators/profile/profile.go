package profileValidator

import (
	"academia/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// VerificationCode validates the :code route parameter before touching
// the database
func VerificationCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
		if !codePattern.MatchString(code) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid verification code format!", nil)
		}
		c.Locals("verificationCode", code)
		return c.Next()
	}
}
