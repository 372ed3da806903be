package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrNoUserID = errors.New("missing user id in token")
	ErrNoRole   = errors.New("missing role in token")
)

// GetUserIDFromToken reads the user id stored in Locals by the auth middleware.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrNoUserID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("user_role").(string)
	if !ok || role == "" {
		return "", ErrNoRole
	}
	return role, nil
}

func GetUserNameFromToken(c *fiber.Ctx) string {
	name, _ := c.Locals("user_name").(string)
	return name
}
