package server

import (
	"commentary/internal/models"

	"github.com/gofiber/fiber/v2"
)

// route is one entry of a resource's route table.
type route struct {
	method  string
	path    string
	handler fiber.Handler
}

// idHandler serves a route whose :id parameter has already been validated.
type idHandler func(c *fiber.Ctx, id uint) error

func register(r fiber.Router, routes []route) {
	for _, rt := range routes {
		r.Add(rt.method, rt.path, rt.handler)
	}
}

// parseID extracts a route parameter by name as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// withID adapts h to a fiber.Handler, rejecting non-positive or non-numeric ids
// before h runs.
func withID(h idHandler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		return h(c, id)
	}
}
