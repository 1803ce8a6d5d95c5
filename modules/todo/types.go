package todo

import (
	"context"

	domain "github.com/example/todo-api/domain/todo"
)

// Service names registered by the todo module.
const (
	ServiceCreateTodo = "create-todo"
	ServiceListTodos  = "list-todos"
	ServiceGetTodo    = "get-todo"
	ServiceUpdateTodo = "update-todo"
	ServiceDeleteTodo = "delete-todo"
)

// Error codes carried in ServiceError.
const (
	CodeValidation = "validation"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal"
)

// ServiceError describes a failed operation inside a service reply.
type ServiceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateTodoRequest is the request for creating a todo.
type CreateTodoRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Completed *bool  `json:"completed,omitempty"`
}

// ListTodosRequest is the request for listing a page of todos.
type ListTodosRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// ListTodosResponse is the response for listing todos.
type ListTodosResponse struct {
	Todos []domain.Todo `json:"todos"`
	Total int           `json:"total"`
	Error *ServiceError `json:"error,omitempty"`
}

// GetTodoRequest is the request for getting a todo.
type GetTodoRequest struct {
	TodoID string `json:"todo_id"`
}

// UpdateTodoRequest is the request for partially updating a todo.
type UpdateTodoRequest struct {
	TodoID string       `json:"todo_id"`
	Patch  domain.Patch `json:"patch"`
}

// DeleteTodoRequest is the request for deleting a todo.
type DeleteTodoRequest struct {
	TodoID string `json:"todo_id"`
}

// DeleteTodoResponse is the response for deleting a todo.
type DeleteTodoResponse struct {
	Deleted bool          `json:"deleted"`
	Error   *ServiceError `json:"error,omitempty"`
}

// TodoResponse is the response carrying a single todo.
type TodoResponse struct {
	Todo  *domain.Todo  `json:"todo,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// TodoPort defines the interface for todo operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the store.
// Errors wrap domain.ErrValidation or domain.ErrNotFound where applicable.
type TodoPort interface {
	CreateTodo(ctx context.Context, req *CreateTodoRequest) (domain.Todo, error)
	ListTodos(ctx context.Context, page, limit int) ([]domain.Todo, int, error)
	GetTodo(ctx context.Context, todoID string) (domain.Todo, error)
	UpdateTodo(ctx context.Context, todoID string, patch domain.Patch) (domain.Todo, error)
	DeleteTodo(ctx context.Context, todoID string) error
}
