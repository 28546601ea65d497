package task

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized is how Service implementations report a 401 from any
// authenticated call. The Synchronizer reacts uniformly: surface "session
// expired", invalidate the session and drop the local list.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoSession is returned when a task operation is attempted with nobody
// logged in. The operation is a no-op apart from the alert.
var ErrNoSession = errors.New("no active session")

type Service interface {
	GetAll(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, t Task) error
	Update(ctx context.Context, t Task) error
	Delete(ctx context.Context, taskID string) error
}

// SessionSource is the slice of the session manager the Synchronizer needs:
// who is logged in, and the forced-logout path taken on a 401.
type SessionSource interface {
	ActiveUserID() (string, bool)
	Invalidate()
}

type Alerter interface {
	Alert(title, message string)
}

// Synchronizer keeps the local task list consistent with the remote service.
// Every mutation goes through the service and is followed by a full refetch;
// the server is the single source of truth and no merge logic exists here.
//
// All methods are expected to be driven from a single goroutine. Overlapping
// operations interleave last-fetch-wins and the loading flag carries no
// mutual exclusion.
type Synchronizer struct {
	svc     Service
	session SessionSource
	alert   Alerter
	logger  *slog.Logger

	tasks   []Task
	loading bool
}

func NewSynchronizer(svc Service, session SessionSource, alert Alerter, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		svc:     svc,
		session: session,
		alert:   alert,
		logger:  logger,
	}
}

// Tasks returns the current local list in server order.
func (s *Synchronizer) Tasks() []Task {
	return s.tasks
}

func (s *Synchronizer) Loading() bool {
	return s.loading
}

// FetchAll replaces the local list wholesale with the server's. On a 401 the
// session is invalidated and the list emptied; on any other failure the list
// from before the call is kept untouched.
func (s *Synchronizer) FetchAll(ctx context.Context) error {
	if _, ok := s.session.ActiveUserID(); !ok {
		s.alert.Alert("Not logged in", "Please log in first.")
		return ErrNoSession
	}

	s.loading = true
	defer func() { s.loading = false }()

	list, err := s.svc.GetAll(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.expireSession(err)
			return err
		}
		s.logger.Error("fetch tasks", "error", err)
		s.alert.Alert("Error", "Could not load your tasks.")
		return err
	}

	s.tasks = list
	return nil
}

// Create submits a draft and then refetches the full list. The creation
// response body is never consulted; whatever the next fetch returns is the
// authoritative copy, server-assigned id included.
func (s *Synchronizer) Create(ctx context.Context, draft Task) error {
	userID, ok := s.session.ActiveUserID()
	if !ok {
		s.alert.Alert("Not logged in", "Please log in first.")
		return ErrNoSession
	}

	draft.Title = strings.TrimSpace(draft.Title)
	if err := draft.ValidateDraft(); err != nil {
		s.alert.Alert("Error", err.Error())
		return err
	}

	draft.ID = uuid.NewString() // provisional; the server's id wins
	draft.UserID = userID
	draft.Completed = false
	draft.CreatedAt = time.Now().UnixMilli()

	s.loading = true
	defer func() { s.loading = false }()

	if err := s.svc.Create(ctx, draft); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.expireSession(err)
			return err
		}
		s.logger.Error("create task", "error", err)
		s.alert.Alert("Error", "Could not add the task.")
		return err
	}

	return s.FetchAll(ctx)
}

// Remove deletes by id and refetches. The server is the arbiter of
// existence; an unknown id surfaces as a generic failure.
func (s *Synchronizer) Remove(ctx context.Context, taskID string) error {
	if _, ok := s.session.ActiveUserID(); !ok {
		s.alert.Alert("Not logged in", "Please log in first.")
		return ErrNoSession
	}

	s.loading = true
	defer func() { s.loading = false }()

	if err := s.svc.Delete(ctx, taskID); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.expireSession(err)
			return err
		}
		s.logger.Error("delete task", "task", taskID, "error", err)
		s.alert.Alert("Error", "Could not delete the task.")
		return err
	}

	return s.FetchAll(ctx)
}

// Toggle flips completion locally before the network round trip, pushes the
// flipped task and then refetches. A failed update leaves the optimistic
// flip in place; reconciliation only happens on the next successful fetch.
func (s *Synchronizer) Toggle(ctx context.Context, taskID string) error {
	if _, ok := s.session.ActiveUserID(); !ok {
		s.alert.Alert("Not logged in", "Please log in first.")
		return ErrNoSession
	}

	var flipped *Task
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].Completed = !s.tasks[i].Completed
			flipped = &s.tasks[i]
			break
		}
	}
	if flipped == nil {
		s.alert.Alert("Error", "Task not found.")
		return errors.New("task not found: " + taskID)
	}

	s.loading = true
	defer func() { s.loading = false }()

	if err := s.svc.Update(ctx, *flipped); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			s.expireSession(err)
			return err
		}
		s.logger.Error("update task", "task", taskID, "error", err)
		s.alert.Alert("Error", "Could not update the task.")
		return err
	}

	return s.FetchAll(ctx)
}

func (s *Synchronizer) expireSession(err error) {
	s.logger.Error("session expired", "error", err)
	s.alert.Alert("Session expired", "Please log in again.")
	s.session.Invalidate()
	s.tasks = nil
}
