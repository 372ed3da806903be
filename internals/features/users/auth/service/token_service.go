package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"schoolsync_backend/internals/configs"
)

// IssueAccessToken signs a session token. The role is baked into the token
// at issue time and never re-derived per call.
func IssueAccessToken(userID uuid.UUID, role, name string) (string, time.Time, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}

	now := time.Now().UTC()
	exp := now.Add(configs.AccessTokenTTL)

	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": role,
		"name": name,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fiber.NewError(fiber.StatusInternalServerError, "Failed to sign token")
	}
	return signed, exp, nil
}
