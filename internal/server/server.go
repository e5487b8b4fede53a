// Package server wires dependencies together and contains the HTTP handlers
// for the application's server-rendered pages.
package server

import (
	"context"
	"net/http"
	"time"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/repository"
	"quill/internal/service"
	"quill/internal/session"
	"quill/web"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config      *config.Config
	db          *gorm.DB
	prom        *fiberprometheus.FiberPrometheus
	sessions    *session.Manager
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	authService *service.AuthService
	blogService *service.BlogService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized database
// handle. Use this in tests or when a bootstrap layer establishes the DB.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		config:      cfg,
		db:          db,
		prom:        fiberprometheus.New("quill"),
		sessions:    session.NewManager(cfg.SessionSecret, cfg.SessionTTL()),
		userRepo:    userRepo,
		postRepo:    postRepo,
		authService: service.NewAuthService(userRepo),
		blogService: service.NewBlogService(postRepo),
	}
}

// NewApp builds the Fiber application: views engine, error mapping,
// middleware, and routes.
func (s *Server) NewApp() *fiber.App {
	engine := html.NewFileSystem(http.FS(web.TemplatesFS()), ".html")

	app := fiber.New(fiber.Config{
		AppName:      "Quill",
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: s.errorHandler,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing must run early so handlers see the span context
	app.Use(middleware.TracingMiddleware())

	// Context middleware to propagate request ID and user ID into logs
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.prom != nil {
		app.Use(s.prom.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later.")
		},
	}))

	// Resolve the session cookie to a user on every request
	app.Use(middleware.LoadCurrentUser(s.sessions, s.authService.GetUser))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthz", s.HealthCheck)
	if s.prom != nil {
		s.prom.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := app.Group("/auth")
	auth.Get("/register", s.RegisterForm)
	auth.Post("/register", s.Register)
	auth.Get("/login", s.LoginForm)
	auth.Post("/login", s.Login)
	auth.Get("/logout", s.Logout)

	// Blog routes. Fixed paths are registered before the parameterized
	// /:id/... routes so "/create" never matches as an id.
	app.Get("/", s.Index)
	app.Get("/create", middleware.RequireLogin(), s.CreateForm)
	app.Post("/create", middleware.RequireLogin(), s.CreatePost)
	app.Get("/:id/update", middleware.RequireLogin(), s.UpdateForm)
	app.Post("/:id/update", middleware.RequireLogin(), s.UpdatePost)
	app.Post("/:id/delete", middleware.RequireLogin(), s.DeletePost)
}

// HealthCheck reports process liveness.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	_ = ctx
	if s.db != nil {
		return database.Close(s.db)
	}
	return nil
}
