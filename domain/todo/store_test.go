package todo

import (
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fakeClock returns a fixed instant that tests advance by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func ptr[T any](v T) *T { return &v }

func TestStore_Create(t *testing.T) {
	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	tests := []struct {
		name          string
		title         string
		content       string
		completed     *bool
		wantErr       bool
		wantErrMsg    string
		wantCompleted bool
	}{
		{
			name:          "completed omitted defaults to false",
			title:         "A",
			content:       "x",
			wantCompleted: false,
		},
		{
			name:          "completed true is kept",
			title:         "B",
			content:       "y",
			completed:     ptr(true),
			wantCompleted: true,
		},
		{
			name:       "missing title",
			content:    "y",
			wantErr:    true,
			wantErrMsg: "title is required",
		},
		{
			name:       "missing content",
			title:      "C",
			wantErr:    true,
			wantErrMsg: "content is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := store.Len()
			got, err := store.Create(tt.title, tt.content, tt.completed)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Equal(t, before, store.Len(), "failed create must not change the size")
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.content, got.Content)
			assert.Equal(t, tt.wantCompleted, got.Completed)
			assert.Equal(t, got.CreatedAt, got.UpdatedAt)
			assert.Equal(t, time.UTC, got.CreatedAt.Location())
			assert.Equal(t, before+1, store.Len())
		})
	}
}

func TestStore_Create_RegeneratesCollidingID(t *testing.T) {
	ids := []string{"dup", "dup", "", "fresh"}
	var n int
	store := NewStore(WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))

	first, err := store.Create("one", "1", nil)
	require.NoError(t, err)
	assert.Equal(t, "dup", first.ID)

	second, err := store.Create("two", "2", nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh", second.ID)
}

func TestStore_GetByID(t *testing.T) {
	store := NewStore()

	created, err := store.Create("A", "x", nil)
	require.NoError(t, err)

	got, err := store.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = store.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateByID(t *testing.T) {
	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	created, err := store.Create("A", "x", nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		patch Patch
		want  func(prev Todo) Todo
	}{
		{
			name:  "completed only",
			patch: Patch{Completed: ptr(true)},
			want: func(prev Todo) Todo {
				prev.Completed = true
				return prev
			},
		},
		{
			name:  "title only",
			patch: Patch{Title: ptr("B")},
			want: func(prev Todo) Todo {
				prev.Title = "B"
				return prev
			},
		},
		{
			name:  "content and completed",
			patch: Patch{Content: ptr("y"), Completed: ptr(false)},
			want: func(prev Todo) Todo {
				prev.Content = "y"
				prev.Completed = false
				return prev
			},
		},
		{
			name:  "empty patch only refreshes updatedAt",
			patch: Patch{},
			want:  func(prev Todo) Todo { return prev },
		},
	}

	prev := created
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.Advance(time.Second)

			got, err := store.UpdateByID(created.ID, tt.patch)
			require.NoError(t, err)

			want := tt.want(prev)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.Title, got.Title)
			assert.Equal(t, want.Content, got.Content)
			assert.Equal(t, want.Completed, got.Completed)
			assert.Equal(t, created.CreatedAt, got.CreatedAt)
			assert.True(t, got.UpdatedAt.After(prev.UpdatedAt), "updatedAt must increase")

			stored, err := store.GetByID(created.ID)
			require.NoError(t, err)
			assert.Equal(t, got, stored)

			prev = got
		})
	}
}

func TestStore_UpdateByID_ClockGoesBackwards(t *testing.T) {
	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	created, err := store.Create("A", "x", nil)
	require.NoError(t, err)

	clock.Advance(-time.Hour)
	got, err := store.UpdateByID(created.ID, Patch{Completed: ptr(true)})
	require.NoError(t, err)

	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestStore_UpdateByID_NotFound(t *testing.T) {
	store := NewStore()
	created, err := store.Create("A", "x", nil)
	require.NoError(t, err)

	_, err = store.UpdateByID("missing", Patch{Title: ptr("B")})
	require.ErrorIs(t, err, ErrNotFound)

	got, err := store.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestStore_DeleteByID(t *testing.T) {
	store := NewStore()

	a, err := store.Create("A", "x", nil)
	require.NoError(t, err)
	b, err := store.Create("B", "y", nil)
	require.NoError(t, err)

	require.NoError(t, store.DeleteByID(a.ID))
	assert.Equal(t, 1, store.Len())

	_, err = store.GetByID(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.UpdateByID(a.ID, Patch{Completed: ptr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteByID(a.ID), ErrNotFound)

	remaining, total := store.List(1, DefaultLimit)
	assert.Equal(t, 1, total)
	assert.Equal(t, []Todo{b}, remaining)
}

func TestStore_List(t *testing.T) {
	store := NewStore()
	for i := 0; i < 15; i++ {
		_, err := store.Create(fmt.Sprintf("todo-%02d", i), "body", nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name       string
		page       int
		limit      int
		wantTitles []string
	}{
		{name: "first page", page: 1, limit: 10, wantTitles: titles(0, 10)},
		{name: "remainder on second page", page: 2, limit: 10, wantTitles: titles(10, 15)},
		{name: "page past the end", page: 3, limit: 10, wantTitles: []string{}},
		{name: "small pages", page: 4, limit: 4, wantTitles: titles(12, 15)},
		{name: "page zero treated as first", page: 0, limit: 3, wantTitles: titles(0, 3)},
		{name: "zero limit", page: 1, limit: 0, wantTitles: []string{}},
		{name: "limit larger than collection", page: 1, limit: 100, wantTitles: titles(0, 15)},
		{name: "huge page", page: math.MaxInt, limit: 10, wantTitles: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := store.List(tt.page, tt.limit)
			assert.Equal(t, 15, total)
			assert.LessOrEqual(t, len(got), tt.limit)

			gotTitles := make([]string, 0, len(got))
			for _, todo := range got {
				gotTitles = append(gotTitles, todo.Title)
			}
			assert.Equal(t, tt.wantTitles, gotTitles)
		})
	}
}

func TestStore_List_DoesNotExposeInternalSlice(t *testing.T) {
	store := NewStore()
	created, err := store.Create("A", "x", nil)
	require.NoError(t, err)

	page, _ := store.List(1, DefaultLimit)
	page[0].Title = "mutated"

	got, err := store.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
}

func TestStore_ConcurrentCreate(t *testing.T) {
	const n = 200
	store := NewStore()

	var g errgroup.Group
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			created, err := store.Create(fmt.Sprintf("todo-%d", i), "body", nil)
			if err != nil {
				return err
			}
			ids[i] = created.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[string]struct{}, n)
	for _, id := range ids {
		require.NotEmpty(t, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, store.Len())
}

func TestStore_ConcurrentMixedOperations(t *testing.T) {
	store := NewStore()
	seed, err := store.Create("seed", "body", nil)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := store.Create("c", "body", nil)
			return err
		})
		g.Go(func() error {
			_, err := store.UpdateByID(seed.ID, Patch{Completed: ptr(i%2 == 0)})
			return err
		})
		g.Go(func() error {
			store.List(1, DefaultLimit)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, 51, store.Len())

	got, err := store.GetByID(seed.ID)
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func titles(from, to int) []string {
	out := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, fmt.Sprintf("todo-%02d", i))
	}
	return out
}
