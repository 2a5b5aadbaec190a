package server

import (
	"errors"
	"log/slog"

	"face2geek/internal/middleware"
	"face2geek/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination reads ?limit= and ?offset=. Out of range values fall back
// to defaultLimit and 0; limit is capped at maxPaginationLimit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	p := Pagination{Limit: c.QueryInt("limit", defaultLimit), Offset: c.QueryInt("offset", 0)}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	p.Limit = min(p.Limit, maxPaginationLimit)
	p.Offset = max(p.Offset, 0)
	return p
}

// parseID reads the :id route parameter as a positive id of resource. On
// failure it writes 400 "Invalid <resource> ID" and returns
// errResponseWritten; the handler then returns nil.
func parseID(c *fiber.Ctx, resource string) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+resource+" ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON request body into dest.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// currentUser returns the authenticated user id, or 0 for anonymous callers.
func currentUser(c *fiber.Ctx) uint {
	userID, _ := c.Locals("userID").(uint)
	return userID
}

// respondServiceError maps a service error onto the JSON error envelope.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}
