package todo

import (
	"context"
	"errors"
	"time"

	domain "github.com/example/todo-api/domain/todo"
	"github.com/example/todo-api/events"
	"github.com/go-monolith/mono"
)

// createTodo handles the create-todo service request.
func (m *TodoModule) createTodo(_ context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	created, err := m.store.Create(req.Title, req.Content, req.Completed)
	if err != nil {
		return TodoResponse{Error: m.toServiceError(err)}, nil
	}

	// Event publishing is best-effort; the todo is already stored.
	if m.eventBus != nil {
		event := events.TodoCreatedEvent{
			TodoID:    created.ID,
			Title:     created.Title,
			CreatedAt: created.CreatedAt,
		}
		if err := events.TodoCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TodoCreated event", "todoID", created.ID, "error", err)
		}
	}

	return TodoResponse{Todo: &created}, nil
}

// listTodos handles the list-todos service request. Defaults for page and
// limit are resolved by the caller.
func (m *TodoModule) listTodos(_ context.Context, req ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos, total := m.store.List(req.Page, req.Limit)
	return ListTodosResponse{
		Todos: todos,
		Total: total,
	}, nil
}

// getTodo handles the get-todo service request.
func (m *TodoModule) getTodo(_ context.Context, req GetTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	found, err := m.store.GetByID(req.TodoID)
	if err != nil {
		return TodoResponse{Error: m.toServiceError(err)}, nil
	}
	return TodoResponse{Todo: &found}, nil
}

// updateTodo handles the update-todo service request.
func (m *TodoModule) updateTodo(_ context.Context, req UpdateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	updated, err := m.store.UpdateByID(req.TodoID, req.Patch)
	if err != nil {
		return TodoResponse{Error: m.toServiceError(err)}, nil
	}

	if m.eventBus != nil {
		event := events.TodoUpdatedEvent{
			TodoID:    updated.ID,
			Fields:    req.Patch.Fields(),
			Completed: updated.Completed,
			UpdatedAt: updated.UpdatedAt,
		}
		if err := events.TodoUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TodoUpdated event", "todoID", updated.ID, "error", err)
		}
	}

	return TodoResponse{Todo: &updated}, nil
}

// deleteTodo handles the delete-todo service request.
func (m *TodoModule) deleteTodo(_ context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	if err := m.store.DeleteByID(req.TodoID); err != nil {
		return DeleteTodoResponse{Deleted: false, Error: m.toServiceError(err)}, nil
	}

	if m.eventBus != nil {
		event := events.TodoDeletedEvent{
			TodoID:    req.TodoID,
			DeletedAt: time.Now().UTC(),
		}
		if err := events.TodoDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			m.logger.Warn("Failed to publish TodoDeleted event", "todoID", req.TodoID, "error", err)
		}
	}

	return DeleteTodoResponse{Deleted: true}, nil
}

// toServiceError converts a store error into its reply form.
func (m *TodoModule) toServiceError(err error) *ServiceError {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return &ServiceError{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return &ServiceError{Code: CodeNotFound, Message: err.Error()}
	default:
		m.logger.Error("Unexpected store error", "error", err)
		return &ServiceError{Code: CodeInternal, Message: err.Error()}
	}
}
