package http

import (
	"context"
	"time"

	"github.com/eventkeeper/eventkeeper/internal/logging"
	"github.com/eventkeeper/eventkeeper/internal/server/config"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Server wraps the Fiber application and its route wiring.
type Server struct {
	app     *fiber.App
	address string
	logger  logging.Logger
}

// NewServer builds the HTTP server and mounts all routes. The cache may be
// nil, in which case the login rate limiter is a no-op.
func NewServer(cfg *config.Config, h *Handler, cache *redis.Client, l logging.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "eventkeeper",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    16 * 1024 * 1024,
	})

	requireAuth := RequireAuth(cfg.SecretKey)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/login", LoginRateLimit(cache, cfg.LoginRateLimit, cfg.LoginRateWindow), h.Login)
	authGroup.Post("/refresh", h.Refresh)
	// Logout authenticates by the refresh token it revokes, so an expired
	// access token cannot strand a sign-out.
	authGroup.Post("/logout", h.Logout)
	authGroup.Get("/me", requireAuth, h.Me)
	authGroup.Patch("/profile", requireAuth, h.PatchProfile)

	usersGroup := api.Group("/users", requireAuth)
	usersGroup.Get("/:id/document", h.GetDocument)
	usersGroup.Put("/:id/document", h.PutDocument)
	usersGroup.Patch("/:id/document", h.PatchDocument)

	storageGroup := api.Group("/storage", requireAuth)
	storageGroup.Put("/objects/*", h.PutObject)
	storageGroup.Delete("/objects/*", h.DeleteObject)

	return &Server{app: app, address: cfg.EndpointAddr, logger: l.With("module", "http_server")}
}

// App exposes the underlying Fiber application, used by tests to drive
// requests without a listener.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
