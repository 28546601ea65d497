package task

import (
	"errors"
	"time"
)

// ServerService is the server-side task surface consumed by the HTTP
// handlers. Not to be confused with Service, the client-side view of the
// same contract.
type ServerService interface {
	GetByUser(userID string) []*Task
	Create(t *Task, userID string) error
	Update(t *Task, userID string) error
	Delete(taskID, userID string) error
}

type TaskService struct {
	Repo Repository
}

func NewService(repo Repository) *TaskService {
	return &TaskService{Repo: repo}
}

func (s *TaskService) GetByUser(userID string) []*Task {
	return s.Repo.GetByUser(userID)
}

func (s *TaskService) Create(t *Task, userID string) error {
	if t.Title == "" {
		return ErrEmptyTitle
	}

	// The owner comes from the token, never from the payload, and the id the
	// client drafted is discarded in favor of the store's.
	t.UserID = userID
	t.ID = ""
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().UnixMilli()
	}

	return s.Repo.Create(t)
}

func (s *TaskService) Update(t *Task, userID string) error {
	if err := s.checkOwner(t.ID, userID); err != nil {
		return err
	}
	t.UserID = userID
	return s.Repo.Update(t)
}

func (s *TaskService) Delete(taskID, userID string) error {
	if err := s.checkOwner(taskID, userID); err != nil {
		return err
	}
	return s.Repo.Delete(taskID)
}

func (s *TaskService) checkOwner(taskID, userID string) error {
	existing, err := s.Repo.GetByID(taskID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return errors.New("task belongs to another user")
	}
	return nil
}
