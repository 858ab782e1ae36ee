package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/domain"
	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

func pathID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return id, nil
}

func queryDecimal(c *fiber.Ctx, name string) (decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return decimal.Zero, apperrors.NewValidationError(name+" required", map[string]any{name: "required"})
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return d, nil
}

func queryDate(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperrors.NewValidationError(name+" required", map[string]any{name: "required"})
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return t, nil
}

// parseBody decodes and validates a JSON request body into req.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"body": err.Error()})
	}
	if details, ok := dto.Validate(req); !ok {
		return apperrors.NewValidationError("validation failed", details)
	}
	return nil
}
