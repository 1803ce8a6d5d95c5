package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/example/todo-api/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// AllowedOrigins are the browser origins permitted by CORS.
const AllowedOrigins = "http://localhost:3000,http://localhost:8000,http://localhost:7071"

// APIModule is the driving adapter that exposes the todo REST endpoints.
// It calls into the todo module via the TodoPort interface.
type APIModule struct {
	app         *fiber.App
	host        string
	port        int
	todoAdapter todo.TodoPort
	logger      types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on host:port.
func NewModule(host string, port int, logger types.Logger) *APIModule {
	return &APIModule{
		host:   host,
		port:   port,
		logger: logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"todo"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "todo":
		m.todoAdapter = todo.NewTodoAdapter(container)
	}
}

// Addr returns the listen address.
func (m *APIModule) Addr() string {
	return net.JoinHostPort(m.host, strconv.Itoa(m.port))
}

// Start builds the Fiber app and starts listening.
func (m *APIModule) Start(_ context.Context) error {
	if m.todoAdapter == nil {
		return fmt.Errorf("todoAdapter dependency not set")
	}

	m.app = NewApp(m.todoAdapter, m.logger)

	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(m.Addr()); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors such as the port being in use.
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", m.Addr())
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server...")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.Addr(),
		},
	}
}

// NewApp builds the Fiber app with middleware and todo routes.
func NewApp(todos todo.TodoPort, moduleLogger types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Todo API",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(moduleLogger),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     AllowedOrigins,
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type",
		AllowCredentials: true,
	}))

	registerRoutes(app, NewHandlers(todos, moduleLogger))
	return app
}

func registerRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api")
	api.Get("/healthchecker", h.HealthChecker)

	todos := api.Group("/todos")
	todos.Get("/", h.ListTodos)
	todos.Post("/", h.CreateTodo)
	todos.Get("/:id", h.GetTodo)
	todos.Patch("/:id", h.UpdateTodo)
	todos.Delete("/:id", h.DeleteTodo)
}

// errorHandler renders unhandled errors, including Fiber's own 404 and 405,
// as a message envelope.
func errorHandler(moduleLogger types.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			moduleLogger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
		}

		return c.Status(code).JSON(GenericResponse{
			Status:  statusFor(code),
			Message: message,
		})
	}
}
