package api

import (
	domain "github.com/example/todo-api/domain/todo"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// CreateTodoRequest is the request body for POST /api/todos.
// Client-supplied id and timestamps are not part of it and are ignored.
type CreateTodoRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Completed *bool  `json:"completed"`
}

// UpdateTodoRequest is the request body for PATCH /api/todos/:id.
// A field that is missing or null is left unchanged.
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
}

func (r UpdateTodoRequest) toPatch() domain.Patch {
	return domain.Patch{
		Title:     r.Title,
		Content:   r.Content,
		Completed: r.Completed,
	}
}

// TodoData wraps a single todo inside the data field.
type TodoData struct {
	Todo domain.Todo `json:"todo"`
}

// SingleTodoResponse is the envelope for one todo.
type SingleTodoResponse struct {
	Status string   `json:"status"`
	Data   TodoData `json:"data"`
}

// TodoListResponse is the envelope for a page of todos.
type TodoListResponse struct {
	Status  string        `json:"status"`
	Results int           `json:"results"`
	Todos   []domain.Todo `json:"todos"`
}

// GenericResponse is the envelope for health, errors and other messages.
type GenericResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// statusFor maps an HTTP status code onto the envelope status.
func statusFor(code int) string {
	switch {
	case code >= 500:
		return StatusError
	case code >= 400:
		return StatusFail
	default:
		return StatusSuccess
	}
}
