package todo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the page size used when a list request does not set one.
const DefaultLimit = 10

// Store provides in-memory storage for todos in insertion order.
// Every operation holds the mutex for its whole duration.
type Store struct {
	todos []Todo
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function used to mint todo IDs.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore creates an empty todo store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		todos: make([]Todo, 0),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a new todo. Title and content are required; completed
// defaults to false when nil.
func (s *Store) Create(title, content string, completed *bool) (Todo, error) {
	if title == "" {
		return Todo{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if content == "" {
		return Todo{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for id == "" || s.indexOf(id) >= 0 {
		id = s.newID()
	}

	now := s.now().UTC()
	t := Todo{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if completed != nil {
		t.Completed = *completed
	}

	s.todos = append(s.todos, t)
	return t, nil
}

// List returns one page of todos in insertion order together with the total
// number of todos. Pages are 1-indexed; a page past the end is empty.
func (s *Store) List(page, limit int) ([]Todo, int) {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.todos)
	// Checked before multiplying so huge pages cannot overflow the offset.
	if limit == 0 || page-1 > total/limit {
		return []Todo{}, total
	}
	offset := (page - 1) * limit
	if offset >= total {
		return []Todo{}, total
	}

	end := offset + limit
	if end > total {
		end = total
	}

	result := make([]Todo, end-offset)
	copy(result, s.todos[offset:end])
	return result, total
}

// GetByID returns the todo with the given ID.
func (s *Store) GetByID(id string) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.todos[i], nil
}

// UpdateByID applies patch to the todo with the given ID and refreshes its
// UpdatedAt, even if no field value changed.
func (s *Store) UpdateByID(id string, patch Patch) (Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t := &s.todos[i]
	patch.apply(t)

	// UpdatedAt never moves backwards, even if the wall clock does.
	now := s.now().UTC()
	if now.Before(t.UpdatedAt) {
		now = t.UpdatedAt
	}
	t.UpdatedAt = now

	return *t, nil
}

// DeleteByID removes the todo with the given ID.
func (s *Store) DeleteByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	return nil
}

// Len returns the number of todos in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.todos)
}

// indexOf returns the position of id, or -1. Callers must hold mu.
func (s *Store) indexOf(id string) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
