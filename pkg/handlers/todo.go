package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"geotodo/pkg/claims"
	"geotodo/pkg/task"
)

type TodoHandler struct {
	Service task.ServerService
	Logger  *slog.Logger
}

func NewTodoHandler(service task.ServerService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		Service: service,
		Logger:  logger,
	}
}

// GetTodos returns the authenticated user's tasks only; filtering by owner
// is the server's job.
func (h *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	tasks := h.Service.GetByUser(c.Subject)
	if tasks == nil {
		tasks = []*task.Task{}
	}

	writeData(w, h.Logger, tasks, map[string]any{"count": len(tasks)})
}

func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var draft task.Task
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Service.Create(&draft, c.Subject); err != nil {
		if errors.Is(err, task.ErrEmptyTitle) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("create task", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if ok := writeData(w, h.Logger, draft, nil); ok {
		h.Logger.Info("new task created", "user", c.Subject, "task", draft.ID)
	}
}

func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	taskID, ok := mux.Vars(r)[muxVarTaskID]
	if !ok || taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var updated task.Task
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	updated.ID = taskID

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Service.Update(&updated, c.Subject); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if ok := writeData(w, h.Logger, updated, nil); ok {
		h.Logger.Info("task updated", "user", c.Subject, "task", taskID)
	}
}

func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	taskID, ok := mux.Vars(r)[muxVarTaskID]
	if !ok || taskID == "" {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Service.Delete(taskID, c.Subject); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if ok := writeData(w, h.Logger, map[string]string{"id": taskID}, nil); ok {
		h.Logger.Info("task deleted", "user", c.Subject, "task", taskID)
	}
}
