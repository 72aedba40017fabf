package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labasis/labasis-api/internal/domain"
	"github.com/labasis/labasis-api/internal/repository"
)

type fakeTaskRepo struct {
	byID   map[uint]domain.Task
	nextID uint
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: map[uint]domain.Task{}, nextID: 1}
}

func (f *fakeTaskRepo) seed(task domain.Task) domain.Task {
	if task.ID == 0 {
		task.ID = f.nextID
		f.nextID++
	}
	f.byID[task.ID] = task

	return task
}

func (f *fakeTaskRepo) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	return f.seed(task), nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id uint) (domain.Task, error) {
	task, ok := f.byID[id]
	if !ok {
		return domain.Task{}, repository.ErrTaskNotFound
	}

	return task, nil
}

func (f *fakeTaskRepo) FindAll(_ context.Context) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.byID {
		out = append(out, task)
	}

	return out, nil
}

func (f *fakeTaskRepo) FindByAuxiliaryID(_ context.Context, auxiliaryID uint) ([]domain.Task, error) {
	var out []domain.Task
	for _, task := range f.byID {
		if task.AuxiliaryID == auxiliaryID {
			out = append(out, task)
		}
	}

	return out, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id uint, updates map[string]any) (domain.Task, error) {
	task, ok := f.byID[id]
	if !ok {
		return domain.Task{}, repository.ErrTaskNotFound
	}

	if title, ok := updates["title"].(string); ok {
		task.Title = title
	}
	if state, ok := updates["state"].(string); ok {
		task.State = domain.TaskState(state)
	}
	if at, ok := updates["completed_at"].(time.Time); ok {
		task.CompletedAt = &at
	}
	if evidence, ok := updates["evidence"].([]string); ok {
		task.Evidence = evidence
	}
	f.byID[id] = task

	return task, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id uint) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(f.byID, id)

	return nil
}

type fakeUserRoleReader struct {
	byID map[uint]domain.User
}

func (f *fakeUserRoleReader) FindByIDAndRole(_ context.Context, id uint, role domain.Role) (domain.User, error) {
	user, ok := f.byID[id]
	if !ok || user.Role != role {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func newTestTaskService(repo *fakeTaskRepo) *TaskService {
	labs := &fakeLabReader{labs: map[uint]domain.Laboratory{
		1: {ID: 1, Name: "Chemistry Lab", Code: "CHEM-1", State: domain.LaboratoryActive},
	}}
	users := &fakeUserRoleReader{byID: map[uint]domain.User{
		5: {ID: 5, Role: domain.RoleAuxiliary},
	}}

	svc := NewTaskService(repo, labs, users)
	svc.now = func() time.Time { return testNow }

	return svc
}

func TestTaskService_Create(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)
	admin := uint(1)

	t.Run("new tasks start pending", func(t *testing.T) {
		created, err := svc.Create(context.Background(), admin, domain.Task{
			Title:        "Restock solvents",
			LaboratoryID: 1,
			AuxiliaryID:  5,
			Priority:     domain.PriorityHigh,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskPending, created.State)
		assert.Equal(t, admin, created.CreatedBy)
		assert.Nil(t, created.CompletedAt)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		_, err := svc.Create(context.Background(), admin, domain.Task{
			Title: "x", LaboratoryID: 1, AuxiliaryID: 99,
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "auxiliary does not exist")
	})

	t.Run("unknown priority", func(t *testing.T) {
		_, err := svc.Create(context.Background(), admin, domain.Task{
			Title: "x", LaboratoryID: 1, AuxiliaryID: 5, Priority: domain.TaskPriority("urgent"),
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown laboratory", func(t *testing.T) {
		_, err := svc.Create(context.Background(), admin, domain.Task{
			Title: "x", LaboratoryID: 99, AuxiliaryID: 5,
		})
		require.ErrorIs(t, err, ErrLaboratoryNotFound)
	})
}

func TestTaskService_Complete(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)

	seeded := repo.seed(domain.Task{
		Title: "Restock solvents", LaboratoryID: 1, AuxiliaryID: 5,
		State: domain.TaskPending,
	})

	t.Run("other auxiliaries cannot complete it", func(t *testing.T) {
		_, err := svc.Complete(context.Background(), domain.User{ID: 6, Role: domain.RoleAuxiliary}, seeded.ID, nil)
		require.ErrorIs(t, err, ErrTaskAccessDenied)
	})

	t.Run("assignee completes with evidence", func(t *testing.T) {
		completed, err := svc.Complete(context.Background(), domain.User{ID: 5, Role: domain.RoleAuxiliary}, seeded.ID, []string{"photo.jpg"})
		require.NoError(t, err)
		assert.Equal(t, domain.TaskCompleted, completed.State)
		require.NotNil(t, completed.CompletedAt)
		assert.Equal(t, testNow, *completed.CompletedAt)
		assert.Equal(t, []string{"photo.jpg"}, completed.Evidence)
	})

	t.Run("completing twice fails", func(t *testing.T) {
		_, err := svc.Complete(context.Background(), domain.User{ID: 5, Role: domain.RoleAuxiliary}, seeded.ID, nil)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "already completed")
	})

	t.Run("completed tasks are immutable", func(t *testing.T) {
		title := "New title"
		_, err := svc.Update(context.Background(), seeded.ID, TaskUpdate{Title: &title})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Message, "cannot be modified")
	})
}

func TestTaskService_ListAndGet(t *testing.T) {
	repo := newFakeTaskRepo()
	svc := newTestTaskService(repo)

	mine := repo.seed(domain.Task{Title: "Mine", LaboratoryID: 1, AuxiliaryID: 5, State: domain.TaskPending})
	repo.seed(domain.Task{Title: "Someone else's", LaboratoryID: 1, AuxiliaryID: 6, State: domain.TaskPending})

	t.Run("admin sees all, auxiliary only own", func(t *testing.T) {
		tasks, err := svc.List(context.Background(), domain.User{ID: 1, Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, tasks, 2)

		tasks, err = svc.List(context.Background(), domain.User{ID: 5, Role: domain.RoleAuxiliary})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Mine", tasks[0].Title)
	})

	t.Run("teachers have no task access", func(t *testing.T) {
		_, err := svc.List(context.Background(), domain.User{ID: 7, Role: domain.RoleTeacher})
		require.ErrorIs(t, err, ErrTaskAccessDenied)
	})

	t.Run("get enforces ownership", func(t *testing.T) {
		_, err := svc.Get(context.Background(), domain.User{ID: 6, Role: domain.RoleAuxiliary}, mine.ID)
		require.ErrorIs(t, err, ErrTaskAccessDenied)

		got, err := svc.Get(context.Background(), domain.User{ID: 5, Role: domain.RoleAuxiliary}, mine.ID)
		require.NoError(t, err)
		assert.Equal(t, mine.ID, got.ID)
	})
}
