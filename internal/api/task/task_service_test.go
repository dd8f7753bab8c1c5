package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-task-tracker/internal/types"
)

// memRepo is an owner-scoped in-memory Repository.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]types.Task
	clock  time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{tasks: make(map[int64]types.Task), clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) List(_ context.Context, ownerID int64, f types.TaskFilter) ([]types.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Task
	for id := m.nextID; id > 0; id-- {
		t, ok := m.tasks[id]
		if !ok || t.OwnerID != ownerID {
			continue
		}
		if f.Done != nil && t.Done != *f.Done {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(t.Title), s) && !strings.Contains(strings.ToLower(t.Description), s) {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memRepo) GetByID(_ context.Context, taskID, ownerID int64) (*types.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, fmt.Errorf("task %d: %w", taskID, types.ErrNotFound)
	}
	return &t, nil
}

func (m *memRepo) Create(_ context.Context, t *types.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t.ID = m.nextID
	t.CreatedAt = m.tick()
	t.UpdatedAt = t.CreatedAt
	m.tasks[t.ID] = *t
	return nil
}

func (m *memRepo) Mutate(_ context.Context, taskID, ownerID int64, fn MutateFunc) (*types.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return nil, fmt.Errorf("task %d: %w", taskID, types.ErrNotFound)
	}
	if err := fn(&t); err != nil {
		return nil, err
	}
	t.ID, t.OwnerID = taskID, ownerID
	t.UpdatedAt = m.tick()
	m.tasks[taskID] = t
	return &t, nil
}

func (m *memRepo) Delete(_ context.Context, taskID, ownerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return fmt.Errorf("task %d: %w", taskID, types.ErrNotFound)
	}
	delete(m.tasks, taskID)
	return nil
}

// MockRepository is a testify double. Mutate applies fn to a copy of the
// task handed to Return.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, ownerID int64, filter types.TaskFilter) ([]types.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Task), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, taskID, ownerID int64) (*types.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Task), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, task *types.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockRepository) Mutate(ctx context.Context, taskID, ownerID int64, fn MutateFunc) (*types.Task, error) {
	args := m.Called(ctx, taskID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	current := *args.Get(0).(*types.Task)
	if err := fn(&current); err != nil {
		return nil, err
	}
	return &current, args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, taskID, ownerID int64) error {
	args := m.Called(ctx, taskID, ownerID)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTaskServiceTest() (*memRepo, *TaskServiceImpl) {
	repo := newMemRepo()
	return repo, NewTaskService(repo, discardLogger())
}

func ptr[T any](v T) *T { return &v }

func assertInvariant(t *testing.T, task *types.Task) {
	t.Helper()
	require.NotNil(t, task)
	assert.Equal(t, task.Status == types.TaskStatusCompleted, task.Done, "done must track status (status=%s)", task.Status)
}

func TestWorkedExample(t *testing.T) {
	ctx := context.Background()
	_, svc := setupTaskServiceTest()

	created, err := svc.Create(ctx, types.CreateTaskParams{Title: "Buy milk"}, 7)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusPending, created.Status)
	assert.False(t, created.Done)
	assert.Equal(t, int64(7), created.OwnerID)
	assert.Equal(t, "", created.Description)

	completed, err := svc.ChangeStatus(ctx, created.ID, 7, types.TaskStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusCompleted, completed.Status)
	assert.True(t, completed.Done)

	toggled, err := svc.ToggleCompletion(ctx, created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusPending, toggled.Status)
	assert.False(t, toggled.Done)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("TrimsTitleAndKeepsDescription", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "  Buy milk  ", Description: ptr("2 litres")}, 7)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "2 litres", task.Description)
	})

	t.Run("CompletedAtCreationIsDone", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "Already done", Status: ptr(types.TaskStatusCompleted)}, 7)
		require.NoError(t, err)
		assert.True(t, task.Done)
		assertInvariant(t, task)
	})

	tests := []struct {
		name   string
		params types.CreateTaskParams
	}{
		{"EmptyTitle", types.CreateTaskParams{Title: ""}},
		{"BlankTitle", types.CreateTaskParams{Title: "   "}},
		{"LongTitle", types.CreateTaskParams{Title: strings.Repeat("t", types.TaskTitleMaxLength+1)}},
		{"LongDescription", types.CreateTaskParams{Title: "ok", Description: ptr(strings.Repeat("d", types.TaskDescriptionMaxLength+1))}},
		{"BadStatus", types.CreateTaskParams{Title: "ok", Status: ptr(types.TaskStatus("archived"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := setupTaskServiceTest()
			_, err := svc.Create(ctx, tt.params, 7)
			assert.ErrorIs(t, err, types.ErrInvalidArgument)
			assert.Empty(t, repo.tasks)
		})
	}

	t.Run("NonPositiveCaller", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		_, err := svc.Create(ctx, types.CreateTaskParams{Title: "ok"}, 0)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("StoreFailureIsInvalidArgument", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewTaskService(repo, discardLogger())
		repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("violates check constraint")).Once()

		_, err := svc.Create(ctx, types.CreateTaskParams{Title: "ok"}, 7)
		require.ErrorIs(t, err, types.ErrInvalidArgument)
		assert.Contains(t, err.Error(), "violates check constraint")
	})
}

func TestInvariantHoldsAfterEveryWrite(t *testing.T) {
	ctx := context.Background()
	_, svc := setupTaskServiceTest()
	statuses := []types.TaskStatus{types.TaskStatusPending, types.TaskStatusInProgress, types.TaskStatusCompleted}

	for _, initial := range statuses {
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t", Status: ptr(initial)}, 7)
		require.NoError(t, err)
		assertInvariant(t, task)

		for _, next := range statuses {
			changed, err := svc.ChangeStatus(ctx, task.ID, 7, next)
			require.NoError(t, err)
			assertInvariant(t, changed)

			toggled, err := svc.ToggleCompletion(ctx, task.ID, 7)
			require.NoError(t, err)
			assertInvariant(t, toggled)

			for _, done := range []bool{true, false} {
				updated, err := svc.Update(ctx, task.ID, types.UpdateTaskParams{Done: ptr(done)}, 7)
				require.NoError(t, err)
				assertInvariant(t, updated)
				assert.Equal(t, done, updated.Done)

				updated, err = svc.Update(ctx, task.ID, types.UpdateTaskParams{Status: ptr(next), Done: ptr(done)}, 7)
				require.NoError(t, err)
				assertInvariant(t, updated)
				assert.Equal(t, next, updated.Status, "status wins over an explicit done")
			}
		}
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesPresentFields", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "Buy milk", Description: ptr("2 litres"), Status: ptr(types.TaskStatusInProgress)}, 7)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, task.ID, types.UpdateTaskParams{Title: ptr(" Buy oat milk ")}, 7)
		require.NoError(t, err)
		assert.Equal(t, "Buy oat milk", updated.Title)
		assert.Equal(t, "2 litres", updated.Description)
		assert.Equal(t, types.TaskStatusInProgress, updated.Status)
		assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	})

	t.Run("DoneFalseKeepsInProgress", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t", Status: ptr(types.TaskStatusInProgress)}, 7)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, task.ID, types.UpdateTaskParams{Done: ptr(false)}, 7)
		require.NoError(t, err)
		assert.Equal(t, types.TaskStatusInProgress, updated.Status)
		assert.False(t, updated.Done)
	})

	t.Run("DoneFalseReopensCompleted", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t", Status: ptr(types.TaskStatusCompleted)}, 7)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, task.ID, types.UpdateTaskParams{Done: ptr(false)}, 7)
		require.NoError(t, err)
		assert.Equal(t, types.TaskStatusPending, updated.Status)
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t"}, 7)
		require.NoError(t, err)

		_, err = svc.Update(ctx, task.ID, types.UpdateTaskParams{}, 7)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("BlankTitle", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t"}, 7)
		require.NoError(t, err)

		_, err = svc.Update(ctx, task.ID, types.UpdateTaskParams{Title: ptr("  ")}, 7)
		assert.ErrorIs(t, err, types.ErrInvalidArgument)
	})

	t.Run("MissingTask", func(t *testing.T) {
		_, svc := setupTaskServiceTest()
		_, err := svc.Update(ctx, 404, types.UpdateTaskParams{Title: ptr("x")}, 7)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestChangeStatus_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := NewTaskService(repo, discardLogger())

	_, err := svc.ChangeStatus(context.Background(), 1, 7, types.TaskStatus("archived"))
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	repo.AssertNotCalled(t, "Mutate", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleIsAnInvolutionFromPendingOrCompleted(t *testing.T) {
	ctx := context.Background()
	_, svc := setupTaskServiceTest()

	for _, s := range []types.TaskStatus{types.TaskStatusPending, types.TaskStatusCompleted} {
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t", Status: ptr(s)}, 7)
		require.NoError(t, err)

		_, err = svc.ToggleCompletion(ctx, task.ID, 7)
		require.NoError(t, err)
		back, err := svc.ToggleCompletion(ctx, task.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, s, back.Status)
		assert.Equal(t, task.Done, back.Done)
	}

	inProgress, err := svc.Create(ctx, types.CreateTaskParams{Title: "t", Status: ptr(types.TaskStatusInProgress)}, 7)
	require.NoError(t, err)
	toggled, err := svc.ToggleCompletion(ctx, inProgress.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, types.TaskStatusCompleted, toggled.Status)
}

func TestOwnershipLooksLikeNotFound(t *testing.T) {
	ctx := context.Background()
	repo, svc := setupTaskServiceTest()

	owned, err := svc.Create(ctx, types.CreateTaskParams{Title: "A's task"}, 1)
	require.NoError(t, err)
	const stranger = int64(2)
	const missing = int64(999)

	ops := map[string]func(id int64) error{
		"get": func(id int64) error { _, err := svc.GetByID(ctx, id, stranger); return err },
		"update": func(id int64) error {
			_, err := svc.Update(ctx, id, types.UpdateTaskParams{Title: ptr("mine now")}, stranger)
			return err
		},
		"changeStatus": func(id int64) error {
			_, err := svc.ChangeStatus(ctx, id, stranger, types.TaskStatusCompleted)
			return err
		},
		"toggle": func(id int64) error { _, err := svc.ToggleCompletion(ctx, id, stranger); return err },
		"delete": func(id int64) error { return svc.Delete(ctx, id, stranger) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			foreign := op(owned.ID)
			absent := op(missing)
			require.ErrorIs(t, foreign, types.ErrNotFound)
			require.ErrorIs(t, absent, types.ErrNotFound)
		})
	}

	stored := repo.tasks[owned.ID]
	assert.Equal(t, "A's task", stored.Title)
	assert.Equal(t, types.TaskStatusPending, stored.Status)

	list, err := svc.List(ctx, stranger, types.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	_, svc := setupTaskServiceTest()

	mk := func(title, desc string, s types.TaskStatus) *types.Task {
		task, err := svc.Create(ctx, types.CreateTaskParams{Title: title, Description: ptr(desc), Status: ptr(s)}, 7)
		require.NoError(t, err)
		return task
	}
	milk := mk("Buy milk", "", types.TaskStatusPending)
	report := mk("Write report", "quarterly MILK numbers", types.TaskStatusInProgress)
	gym := mk("Gym", "", types.TaskStatusCompleted)
	_, err := svc.Create(ctx, types.CreateTaskParams{Title: "Someone else's milk"}, 8)
	require.NoError(t, err)

	ids := func(tasks []types.Task) []int64 {
		out := []int64{}
		for _, task := range tasks {
			out = append(out, task.ID)
		}
		return out
	}

	all, err := svc.List(ctx, 7, types.TaskFilter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{gym.ID, report.ID, milk.ID}, ids(all), "newest first")

	done, err := svc.List(ctx, 7, types.TaskFilter{Done: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, []int64{gym.ID}, ids(done))

	notDone, err := svc.List(ctx, 7, types.TaskFilter{Done: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, []int64{report.ID, milk.ID}, ids(notDone))

	inProgress, err := svc.List(ctx, 7, types.TaskFilter{Status: ptr(types.TaskStatusInProgress)})
	require.NoError(t, err)
	assert.Equal(t, []int64{report.ID}, ids(inProgress))

	search, err := svc.List(ctx, 7, types.TaskFilter{Search: "milk"})
	require.NoError(t, err)
	assert.Equal(t, []int64{report.ID, milk.ID}, ids(search))

	combined, err := svc.List(ctx, 7, types.TaskFilter{Search: "milk", Done: ptr(false), Status: ptr(types.TaskStatusPending)})
	require.NoError(t, err)
	assert.Equal(t, []int64{milk.ID}, ids(combined))

	none, err := svc.List(ctx, 7, types.TaskFilter{Search: "nothing like this"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestList_ForwardsFilterAndFailures(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewTaskService(repo, discardLogger())
	filter := types.TaskFilter{Done: ptr(true), Search: "milk"}

	repo.On("List", mock.Anything, int64(7), filter).Return(nil, errors.New("timeout")).Once()
	_, err := svc.List(ctx, 7, filter)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = svc.List(ctx, 7, types.TaskFilter{Status: ptr(types.TaskStatus("bogus"))})
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	repo.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	_, svc := setupTaskServiceTest()

	task, err := svc.Create(ctx, types.CreateTaskParams{Title: "t"}, 7)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, task.ID, 7))
	_, err = svc.GetByID(ctx, task.ID, 7)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, task.ID, 7), types.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, -1, 7), types.ErrInvalidArgument)
}

func TestMutateRejectionIsReturned(t *testing.T) {
	repo := new(MockRepository)
	svc := NewTaskService(repo, discardLogger())
	repo.On("Mutate", mock.Anything, int64(3), int64(7)).
		Return(nil, fmt.Errorf("task 3: %w", types.ErrNotFound)).Once()

	_, err := svc.ToggleCompletion(context.Background(), 3, 7)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.NotErrorIs(t, err, types.ErrInvalidArgument)
}
