package todo

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-api/domain/todo"
	"github.com/example/todo-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
)

// TodoModule owns the in-memory todo store and exposes it as request-reply
// services (core domain).
type TodoModule struct {
	store    *domain.Store
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*TodoModule)(nil)
	_ mono.ServiceProviderModule = (*TodoModule)(nil)
	_ mono.EventEmitterModule    = (*TodoModule)(nil)
	_ mono.HealthCheckableModule = (*TodoModule)(nil)
)

// NewModule creates a new TodoModule with an empty store.
func NewModule(logger types.Logger, opts ...domain.Option) *TodoModule {
	return &TodoModule{
		store:  domain.NewStore(opts...),
		logger: logger,
	}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// SetEventBus receives the EventBus from the framework.
func (m *TodoModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *TodoModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TodoCreatedV1.ToBase(),
		events.TodoUpdatedV1.ToBase(),
		events.TodoDeletedV1.ToBase(),
	}
}

// RegisterServices registers the todo request-reply services.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreateTodo, json.Unmarshal, json.Marshal, m.createTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreateTodo, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTodos, json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTodos, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetTodo, json.Unmarshal, json.Marshal, m.getTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetTodo, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateTodo, json.Unmarshal, json.Marshal, m.updateTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateTodo, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteTodo, json.Unmarshal, json.Marshal, m.deleteTodo,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteTodo, err)
	}

	m.logger.Info("Registered todo services",
		"services", []string{ServiceCreateTodo, ServiceListTodos, ServiceGetTodo, ServiceUpdateTodo, ServiceDeleteTodo})
	return nil
}

// Start starts the module.
func (m *TodoModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, todo events will not be published")
	}
	m.logger.Info("Todo module started")
	return nil
}

// Stop stops the module. The store is memory-only and is dropped with the process.
func (m *TodoModule) Stop(_ context.Context) error {
	m.logger.Info("Todo module stopped", "todos", m.store.Len())
	return nil
}

// Health returns the health status of the module.
func (m *TodoModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"todos": m.store.Len(),
		},
	}
}
