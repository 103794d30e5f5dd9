package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
)

// ParamID parses a positive int64 route parameter.
func ParamID(c fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}
