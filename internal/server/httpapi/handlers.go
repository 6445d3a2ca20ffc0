package httpapi

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/asemenov-dev/bookmarkd/internal/common"
	"github.com/asemenov-dev/bookmarkd/internal/server/services"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (s *Server) signUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return s.badRequest(c)
	}

	token, err := s.users.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tokenResponse{Token: token})
}

func (s *Server) signIn(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return s.badRequest(c)
	}

	token, err := s.users.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(tokenResponse{Token: token})
}

func (s *Server) getMe(c *fiber.Ctx) error {
	// the middleware already resolved and sanitized the record
	return c.JSON(currentUser(c))
}

type updateProfileRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (s *Server) updateMe(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c)
	}
	if req.Email != nil && *req.Email == "" {
		return s.badRequest(c)
	}

	user, err := s.users.UpdateProfile(c.UserContext(), currentUser(c).ID, services.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(user.Public())
}

type createBookmarkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

func (s *Server) createBookmark(c *fiber.Ctx) error {
	var req createBookmarkRequest
	if err := c.BodyParser(&req); err != nil || req.Title == "" || req.Link == "" {
		return s.badRequest(c)
	}

	bookmark, err := s.bookmarks.Create(c.UserContext(), currentUser(c).ID, req.Title, req.Description, req.Link)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

func (s *Server) listBookmarks(c *fiber.Ctx) error {
	list, err := s.bookmarks.List(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(list)
}

func (s *Server) getBookmark(c *fiber.Ctx) error {
	id, err := bookmarkID(c)
	if err != nil {
		return s.badRequest(c)
	}

	bookmark, err := s.bookmarks.Get(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(bookmark)
}

type updateBookmarkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
}

func (s *Server) updateBookmark(c *fiber.Ctx) error {
	id, err := bookmarkID(c)
	if err != nil {
		return s.badRequest(c)
	}

	var req updateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return s.badRequest(c)
	}
	if (req.Title != nil && *req.Title == "") || (req.Link != nil && *req.Link == "") {
		return s.badRequest(c)
	}

	bookmark, err := s.bookmarks.Update(c.UserContext(), currentUser(c).ID, id, services.BookmarkUpdate{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	})
	if err != nil {
		return s.handleError(c, err)
	}

	return c.JSON(bookmark)
}

func (s *Server) deleteBookmark(c *fiber.Ctx) error {
	id, err := bookmarkID(c)
	if err != nil {
		return s.badRequest(c)
	}

	if err := s.bookmarks.Delete(c.UserContext(), currentUser(c).ID, id); err != nil {
		return s.handleError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func bookmarkID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func (s *Server) badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "invalid request body",
	})
}

// handleError maps service errors to HTTP statuses. Auth and ownership
// failures deliberately carry generic messages; anything unexpected is logged
// and reported as a plain 500.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, common.ErrorUserAlreadyExists),
		errors.Is(err, common.ErrorInvalidCredentials),
		errors.Is(err, common.ErrorAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": err.Error(),
		})
	case errors.Is(err, common.ErrorUnauthenticated):
		return s.unauthenticated(c)
	default:
		s.logger.Error(c.UserContext(), "request failed", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "internal error",
		})
	}
}
