package task_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"geotodo/pkg/task"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(t *task.Task) error {
	return m.Called(t).Error(0)
}

func (m *mockRepo) GetByID(id string) (*task.Task, error) {
	args := m.Called(id)
	if t := args.Get(0); t != nil {
		return t.(*task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByUser(userID string) []*task.Task {
	args := m.Called(userID)
	if list := args.Get(0); list != nil {
		return list.([]*task.Task)
	}
	return nil
}

func (m *mockRepo) Update(t *task.Task) error {
	return m.Called(t).Error(0)
}

func (m *mockRepo) Delete(taskID string) error {
	return m.Called(taskID).Error(0)
}

func TestTaskService_Create(t *testing.T) {
	t.Run("stamps the owner and drops the client id", func(t *testing.T) {
		repo := new(mockRepo)
		svc := task.NewService(repo)

		repo.On("Create", mock.AnythingOfType("*task.Task")).Return(nil)

		draft := &task.Task{ID: "client-made", Title: "buy milk", UserID: "someone-else"}
		err := svc.Create(draft, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", draft.UserID)
		assert.Empty(t, draft.ID)
		assert.NotZero(t, draft.CreatedAt)
	})

	t.Run("empty title", func(t *testing.T) {
		repo := new(mockRepo)
		svc := task.NewService(repo)

		err := svc.Create(&task.Task{}, "user-1")

		assert.ErrorIs(t, err, task.ErrEmptyTitle)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestTaskService_OwnerChecks(t *testing.T) {
	repo := new(mockRepo)
	svc := task.NewService(repo)

	repo.On("GetByID", "mine").Return(&task.Task{ID: "mine", UserID: "user-1"}, nil)
	repo.On("GetByID", "theirs").Return(&task.Task{ID: "theirs", UserID: "user-2"}, nil)
	repo.On("GetByID", "ghost").Return(nil, errors.New("task not found"))
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("Delete", "mine").Return(nil)

	t.Run("update own task", func(t *testing.T) {
		err := svc.Update(&task.Task{ID: "mine", Title: "x"}, "user-1")
		assert.NoError(t, err)
	})

	t.Run("update another user's task", func(t *testing.T) {
		err := svc.Update(&task.Task{ID: "theirs", Title: "x"}, "user-1")
		assert.Error(t, err)
	})

	t.Run("delete own task", func(t *testing.T) {
		assert.NoError(t, svc.Delete("mine", "user-1"))
	})

	t.Run("delete another user's task", func(t *testing.T) {
		assert.Error(t, svc.Delete("theirs", "user-1"))
		repo.AssertNotCalled(t, "Delete", "theirs")
	})

	t.Run("missing task", func(t *testing.T) {
		assert.Error(t, svc.Delete("ghost", "user-1"))
	})
}
