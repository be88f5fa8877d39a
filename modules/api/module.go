package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/images"
	"github.com/example/todo-app/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	app  *fiber.App
	port int

	todoContainer  mono.ServiceContainer
	authContainer  mono.ServiceContainer
	imageContainer mono.ServiceContainer

	todoAdapter  todo.TodoPort
	authAdapter  auth.AuthPort
	imageAdapter images.ImagePort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on the given port.
func NewModule(port int) *APIModule {
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"todo", "auth", "images"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "todo":
		m.todoContainer = container
		m.todoAdapter = todo.NewTodoAdapter(container)
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "images":
		m.imageContainer = container
		m.imageAdapter = images.NewImageAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.todoContainer == nil || m.authContainer == nil || m.imageContainer == nil {
		return fmt.Errorf("module dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             images.MaxImageSize + 1024*1024,
		ErrorHandler:          fiberErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// setupRoutes configures all routes.
func (m *APIModule) setupRoutes() {
	todoHandlers := NewTodoHandlers(m.todoAdapter)
	authHandlers := NewAuthHandlers(m.authContainer, m.authAdapter)
	imageHandlers := NewImageHandlers(m.imageAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	// Pages behind the route gate. The gate only checks for the session
	// cookie; every mutating endpoint below does its own verification.
	m.app.Get("/", RouteGate(), homePage)
	m.app.Get("/login", RouteGate(), loginPage)
	m.app.Get("/signup", RouteGate(), signupPage)

	// Account endpoints
	authRoutes := m.app.Group("/auth")
	authRoutes.Post("/signup", authHandlers.Signup)
	authRoutes.Post("/login", authHandlers.Login)
	authRoutes.Post("/logout", authHandlers.Logout)
	authRoutes.Post("/refresh", authHandlers.Refresh)
	authRoutes.Get("/me", RequireBearer(m.authAdapter), authHandlers.Me)

	// Todo endpoints
	todos := m.app.Group("/todos")
	todos.Get("/", OptionalBearer(m.authAdapter), todoHandlers.List)
	todos.Post("/", OptionalBearer(m.authAdapter), todoHandlers.Create)
	todos.Put("/:id/edit", OptionalBearer(m.authAdapter), todoHandlers.Update)
	todos.Put("/:id/toggle", RequireBearer(m.authAdapter), todoHandlers.Toggle)
	todos.Delete("/:id", OptionalBearer(m.authAdapter), todoHandlers.Delete)

	// Image attachments: upload first, then reference the URL from a todo.
	m.app.Post("/images", OptionalBearer(m.authAdapter), imageHandlers.Upload)
	m.app.Get("/images/:key", imageHandlers.Download)
}

// fiberErrorHandler shapes errors that escape the handlers.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}
