package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/usecase"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	pkgjwt "github.com/ngvyshop/chatorder-api/pkg/jwt"
)

// Locals key for the resolved access scope.
const LocalScope = "access_scope"

// AccessMiddleware identifies the caller from the User-Id header or a Bearer
// session token, resolves the account scope and stores it in c.Locals. Staff
// callers act within their owner's conversation scope.
func AccessMiddleware(accounts *usecase.AccountUseCase, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		platformID := c.Get("User-Id")
		if platformID == "" {
			platformID = bearerPlatformID(c, jwtSecret)
		}
		if platformID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_IDENTITY", Message: "User-Id header or Bearer token required"})
		}

		scope, err := accounts.ResolveScope(platformID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ACCOUNT_NOT_FOUND", Message: "no account for this identity"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		c.Locals(LocalScope, scope)
		return c.Next()
	}
}

// bearerPlatformID extracts the platform id from a valid session token, or "".
func bearerPlatformID(c *fiber.Ctx, jwtSecret string) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	platformID, _, err := pkgjwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
	if err != nil {
		return ""
	}
	return platformID
}

// RequireOwner rejects staff callers. Must run after AccessMiddleware.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := GetScope(c)
		if scope == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_IDENTITY", Message: "identity not resolved"})
		}
		if !scope.IsOwner() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "owner role required"})
		}
		return c.Next()
	}
}

// GetScope returns the resolved access scope (after AccessMiddleware).
func GetScope(c *fiber.Ctx) *usecase.AccessScope {
	v := c.Locals(LocalScope)
	if v == nil {
		return nil
	}
	s, _ := v.(*usecase.AccessScope)
	return s
}
