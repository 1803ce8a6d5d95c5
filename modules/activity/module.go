// Package activity records recent todo activity from domain events.
package activity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/todo-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	nanoid "github.com/jaevor/go-nanoid"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 100

const entryIDLength = 12

// Kinds of recorded activity.
const (
	KindCreated = "todo_created"
	KindUpdated = "todo_updated"
	KindDeleted = "todo_deleted"
)

// Entry is one recorded todo activity.
type Entry struct {
	ID        string    `json:"id"`
	TodoID    string    `json:"todo_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ActivityModule consumes todo events and keeps the most recent entries.
type ActivityModule struct {
	entries  []Entry
	capacity int
	counts   map[string]int
	mu       sync.RWMutex
	newID    func() string
	logger   types.Logger
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.HealthCheckableModule = (*ActivityModule)(nil)

// NewModule creates an ActivityModule keeping at most capacity entries.
func NewModule(capacity int, logger types.Logger) *ActivityModule {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	newID, err := nanoid.Standard(entryIDLength)
	if err != nil {
		panic(fmt.Sprintf("activity: nanoid generator: %v", err))
	}
	return &ActivityModule{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		counts:   make(map[string]int),
		newID:    newID,
		logger:   logger,
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoCreatedV1, m.handleTodoCreated, m); err != nil {
		return fmt.Errorf("failed to register TodoCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoUpdatedV1, m.handleTodoUpdated, m); err != nil {
		return fmt.Errorf("failed to register TodoUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TodoDeletedV1, m.handleTodoDeleted, m); err != nil {
		return fmt.Errorf("failed to register TodoDeleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", []string{"TodoCreated", "TodoUpdated", "TodoDeleted"})
	return nil
}

func (m *ActivityModule) handleTodoCreated(_ context.Context, event events.TodoCreatedEvent, _ *mono.Msg) error {
	m.logger.Debug("Todo created", "todoID", event.TodoID, "title", event.Title)
	m.record(event.TodoID, KindCreated, fmt.Sprintf("Todo '%s' created", event.Title), event.CreatedAt)
	return nil
}

func (m *ActivityModule) handleTodoUpdated(_ context.Context, event events.TodoUpdatedEvent, _ *mono.Msg) error {
	m.logger.Debug("Todo updated", "todoID", event.TodoID, "fields", event.Fields)
	fields := "no fields"
	if len(event.Fields) > 0 {
		fields = strings.Join(event.Fields, ", ")
	}
	m.record(event.TodoID, KindUpdated, fmt.Sprintf("Todo %s updated (%s)", event.TodoID, fields), event.UpdatedAt)
	return nil
}

func (m *ActivityModule) handleTodoDeleted(_ context.Context, event events.TodoDeletedEvent, _ *mono.Msg) error {
	m.logger.Debug("Todo deleted", "todoID", event.TodoID)
	m.record(event.TodoID, KindDeleted, fmt.Sprintf("Todo %s deleted", event.TodoID), event.DeletedAt)
	return nil
}

// record appends an entry, dropping the oldest once capacity is reached.
func (m *ActivityModule) record(todoID, kind, message string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) == m.capacity {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, Entry{
		ID:        m.newID(),
		TodoID:    todoID,
		Kind:      kind,
		Message:   message,
		Timestamp: at,
	})
	m.counts[kind]++
}

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (m *ActivityModule) Recent(n int) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n <= 0 || n > len(m.entries) {
		n = len(m.entries)
	}
	result := make([]Entry, 0, n)
	for i := len(m.entries) - 1; i >= len(m.entries)-n; i-- {
		result = append(result, m.entries[i])
	}
	return result
}

// Counts returns the number of events seen per kind since start.
func (m *ActivityModule) Counts() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]int, len(m.counts))
	for kind, n := range m.counts {
		result[kind] = n
	}
	return result
}

func (m *ActivityModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"counts": m.Counts(),
		},
	}
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.logger.Info("Activity module started - listening for todo events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.logger.Info("Activity module stopped")
	return nil
}
