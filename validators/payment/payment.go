package paymentValidator

import (
	"academia/middleware"
	courseModels "academia/models/course"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

var validate = validator.New()

var validMethods = map[string]bool{
	courseModels.MethodPagoMovil: true,
	courseModels.MethodBinance:   true,
	courseModels.MethodPaypal:    true,
}

// paymentClaim is the manual payment claim payload. Reference is the
// last digits of the transfer reference the admin matches against the
// bank statement.
type paymentClaim struct {
	FullName  string `json:"full_name" validate:"required,min=3,max=120"`
	IDNumber  string `json:"id_number" validate:"required,min=5,max=20"`
	Reference string `json:"reference" validate:"omitempty,numeric,max=6"`
	Note      string `json:"note" validate:"max=500"`
}

// CreatePaymentRequest validates a manual payment claim
func CreatePaymentRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(struct {
			Method string `json:"method"`
			paymentClaim
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Method = strings.TrimSpace(strings.ToLower(reqData.Method))
		if !validMethods[reqData.Method] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"method": "Method must be pago_movil, binance or paypal!",
			})
		}

		if err := validate.Struct(reqData.paymentClaim); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		details, err := json.Marshal(reqData.paymentClaim)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid claim payload!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("paymentMethod", reqData.Method)
		c.Locals("paymentDetails", datatypes.JSON(details))
		return c.Next()
	}
}

// RequestID validates the :request_id route parameter
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("request_id"))
		requestID, err := strconv.Atoi(raw)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}
		c.Locals("requestID", requestID)
		return c.Next()
	}
}
