package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-api/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TodoPort interface.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for todo services.
// container is the ServiceContainer from the todo module received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// CreateTodo creates a new todo via the create-todo service.
func (a *todoAdapter) CreateTodo(ctx context.Context, req *CreateTodoRequest) (domain.Todo, error) {
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceCreateTodo,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return domain.Todo{}, fmt.Errorf("create-todo service call failed: %w", err)
	}
	return unwrapTodo(resp)
}

// ListTodos lists one page of todos via the list-todos service.
func (a *todoAdapter) ListTodos(ctx context.Context, page, limit int) ([]domain.Todo, int, error) {
	req := ListTodosRequest{Page: page, Limit: limit}
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceListTodos,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, 0, fmt.Errorf("list-todos service call failed: %w", err)
	}
	if resp.Error != nil {
		return nil, 0, resp.Error.toError()
	}
	if resp.Todos == nil {
		resp.Todos = []domain.Todo{}
	}
	return resp.Todos, resp.Total, nil
}

// GetTodo retrieves a todo by ID via the get-todo service.
func (a *todoAdapter) GetTodo(ctx context.Context, todoID string) (domain.Todo, error) {
	req := GetTodoRequest{TodoID: todoID}
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceGetTodo,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Todo{}, fmt.Errorf("get-todo service call failed: %w", err)
	}
	return unwrapTodo(resp)
}

// UpdateTodo applies a partial update via the update-todo service.
func (a *todoAdapter) UpdateTodo(ctx context.Context, todoID string, patch domain.Patch) (domain.Todo, error) {
	req := UpdateTodoRequest{TodoID: todoID, Patch: patch}
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceUpdateTodo,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return domain.Todo{}, fmt.Errorf("update-todo service call failed: %w", err)
	}
	return unwrapTodo(resp)
}

// DeleteTodo deletes a todo via the delete-todo service.
func (a *todoAdapter) DeleteTodo(ctx context.Context, todoID string) error {
	req := DeleteTodoRequest{TodoID: todoID}
	var resp DeleteTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		ServiceDeleteTodo,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("delete-todo service call failed: %w", err)
	}
	if resp.Error != nil {
		return resp.Error.toError()
	}
	if !resp.Deleted {
		return fmt.Errorf("todo not deleted: %s", todoID)
	}
	return nil
}

func unwrapTodo(resp TodoResponse) (domain.Todo, error) {
	if resp.Error != nil {
		return domain.Todo{}, resp.Error.toError()
	}
	if resp.Todo == nil {
		return domain.Todo{}, fmt.Errorf("empty todo reply")
	}
	return *resp.Todo, nil
}

// remoteError keeps the message produced by the todo module while matching
// the domain sentinel with errors.Is.
type remoteError struct {
	sentinel error
	message  string
}

func (e *remoteError) Error() string { return e.message }

func (e *remoteError) Unwrap() error { return e.sentinel }

// toError maps a reply error code back onto the domain errors.
func (e *ServiceError) toError() error {
	switch e.Code {
	case CodeValidation:
		return &remoteError{sentinel: domain.ErrValidation, message: e.Message}
	case CodeNotFound:
		return &remoteError{sentinel: domain.ErrNotFound, message: e.Message}
	default:
		return fmt.Errorf("todo service error: %s", e.Message)
	}
}
