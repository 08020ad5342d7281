package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseID parses a positive uint path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// parseUintQuery parses an optional uint query parameter. Returns nil
// when the parameter is absent, fiber.ErrBadRequest when malformed.
func parseUintQuery(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fiber.ErrBadRequest
	}
	u := uint(v)
	return &u, nil
}

// parseBoolQuery parses an optional bool query parameter
func parseBoolQuery(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fiber.ErrBadRequest
	}
	return &v, nil
}
