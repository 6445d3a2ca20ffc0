package httpapi

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/server/auth"
	"github.com/asemenov-dev/bookmarkd/internal/server/models"
)

const currentUserKey = "currentUser"

// requireAuth gates every protected route: it validates the bearer token,
// resolves the subject to a live user record and stores the sanitized view in
// the request locals. A missing token, a bad token and a token whose subject
// no longer exists all produce the same 401.
func (s *Server) requireAuth(c *fiber.Ctx) error {

	header := c.Get(fiber.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return s.unauthenticated(c)
	}

	userID, _, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return s.unauthenticated(c)
	}

	// a stale token whose subject was deleted is treated like a bad token
	user, err := s.users.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.unauthenticated(c)
		}
		return s.handleError(c, err)
	}

	c.Locals(currentUserKey, user.Public())

	return c.Next()
}

// currentUser returns the identity the middleware attached to this request.
func currentUser(c *fiber.Ctx) *models.PublicUser {
	user, _ := c.Locals(currentUserKey).(*models.PublicUser)
	return user
}

func (s *Server) unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "unauthenticated",
	})
}
