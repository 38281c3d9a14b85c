package middleware

import (
	"errors"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/academy-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

func claimsFrom(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// CurrentUserID returns the user id carried in the access token subject.
func CurrentUserID(c *fiber.Ctx) (uint, error) {
	claims, err := claimsFrom(c)
	if err != nil {
		return 0, err
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, errors.New("missing sub claim")
	}

	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errors.New("invalid sub claim")
	}
	return uint(id), nil
}
