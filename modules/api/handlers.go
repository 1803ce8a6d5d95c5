package api

import (
	"errors"
	"fmt"
	"strconv"

	domain "github.com/example/todo-api/domain/todo"
	"github.com/example/todo-api/modules/todo"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

const healthMessage = "Simple CRUD API with Go, Fiber and mono"

// Handlers translates HTTP requests into TodoPort calls.
type Handlers struct {
	todos  todo.TodoPort
	logger types.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(todos todo.TodoPort, logger types.Logger) *Handlers {
	return &Handlers{todos: todos, logger: logger}
}

// HealthChecker handles GET /api/healthchecker.
func (h *Handlers) HealthChecker(c *fiber.Ctx) error {
	return c.JSON(GenericResponse{
		Status:  StatusSuccess,
		Message: healthMessage,
	})
}

// CreateTodo handles POST /api/todos.
func (h *Handlers) CreateTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.todos.CreateTodo(c.Context(), &todo.CreateTodoRequest{
		Title:     req.Title,
		Content:   req.Content,
		Completed: req.Completed,
	})
	if err != nil {
		return h.handleError(c, err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(SingleTodoResponse{
		Status: StatusSuccess,
		Data:   TodoData{Todo: created},
	})
}

// ListTodos handles GET /api/todos?page=&limit=.
func (h *Handlers) ListTodos(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	limit, err := queryInt(c, "limit", domain.DefaultLimit)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	todos, _, err := h.todos.ListTodos(c.Context(), page, limit)
	if err != nil {
		return h.handleError(c, err, "")
	}

	return c.JSON(TodoListResponse{
		Status:  StatusSuccess,
		Results: len(todos),
		Todos:   todos,
	})
}

// GetTodo handles GET /api/todos/:id.
func (h *Handlers) GetTodo(c *fiber.Ctx) error {
	id := c.Params("id")

	found, err := h.todos.GetTodo(c.Context(), id)
	if err != nil {
		return h.handleError(c, err, id)
	}

	return c.JSON(SingleTodoResponse{
		Status: StatusSuccess,
		Data:   TodoData{Todo: found},
	})
}

// UpdateTodo handles PATCH /api/todos/:id.
func (h *Handlers) UpdateTodo(c *fiber.Ctx) error {
	id := c.Params("id")

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	updated, err := h.todos.UpdateTodo(c.Context(), id, req.toPatch())
	if err != nil {
		return h.handleError(c, err, id)
	}

	return c.JSON(SingleTodoResponse{
		Status: StatusSuccess,
		Data:   TodoData{Todo: updated},
	})
}

// DeleteTodo handles DELETE /api/todos/:id.
func (h *Handlers) DeleteTodo(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.todos.DeleteTodo(c.Context(), id); err != nil {
		return h.handleError(c, err, id)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// handleError maps a TodoPort error onto a status code and message envelope.
func (h *Handlers) handleError(c *fiber.Ctx, err error, id string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, fmt.Sprintf("Todo with ID: %s not found", id))
	default:
		h.logger.Error("Todo request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return fail(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

func fail(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(GenericResponse{
		Status:  statusFor(code),
		Message: message,
	})
}

// queryInt reads a non-negative integer query parameter.
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrValidation, key)
	}
	return n, nil
}
