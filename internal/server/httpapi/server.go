// Package httpapi exposes the service over HTTP: the auth endpoints, the
// protected user and bookmark routes, and the bearer-token middleware that
// resolves the request identity.
package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/asemenov-dev/bookmarkd/internal/logging"
	"github.com/asemenov-dev/bookmarkd/internal/server/services"
)

type Server struct {
	app       *fiber.App
	address   string
	logger    logging.Logger
	users     *services.UserService
	bookmarks *services.BookmarkService
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, bs *services.BookmarkService, secretKey string) *Server {
	s := &Server{
		address:   a,
		logger:    l.With("module", "httpapi"),
		users:     us,
		bookmarks: bs,
		jwtSecret: []byte(secretKey),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.logRequest)

	s.registerRoutes(app)

	s.app = app
	return s
}

func (s *Server) registerRoutes(app *fiber.App) {
	app.Get("/ping", s.ping)

	auth := app.Group("/auth")
	auth.Post("/sign-up", s.signUp)
	auth.Post("/sign-in", s.signIn)

	users := app.Group("/users", s.requireAuth)
	users.Get("/me", s.getMe)
	users.Patch("/me", s.updateMe)

	bookmarks := app.Group("/bookmarks", s.requireAuth)
	bookmarks.Get("/", s.listBookmarks)
	bookmarks.Post("/", s.createBookmark)
	bookmarks.Get("/:id", s.getBookmark)
	bookmarks.Patch("/:id", s.updateBookmark)
	bookmarks.Delete("/:id", s.deleteBookmark)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.app.ShutdownWithContext(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.logger.Info(c.UserContext(), "request",
		"request_id", c.Locals(requestid.ConfigDefault.ContextKey),
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)

	return err
}

func (s *Server) ping(c *fiber.Ctx) error {
	return c.SendString("OK")
}
