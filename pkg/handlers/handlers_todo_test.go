package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"geotodo/pkg/claims"
	"geotodo/pkg/handlers"
	"geotodo/pkg/task"
)

type mockTaskService struct {
	mock.Mock
}

func (m *mockTaskService) GetByUser(userID string) []*task.Task {
	args := m.Called(userID)
	if list := args.Get(0); list != nil {
		return list.([]*task.Task)
	}
	return nil
}

func (m *mockTaskService) Create(t *task.Task, userID string) error {
	return m.Called(t, userID).Error(0)
}

func (m *mockTaskService) Update(t *task.Task, userID string) error {
	return m.Called(t, userID).Error(0)
}

func (m *mockTaskService) Delete(taskID, userID string) error {
	return m.Called(taskID, userID).Error(0)
}

func withClaims(req *http.Request, userID string) *http.Request {
	c := &claims.Claims{
		Email:          userID + "@user.com",
		StandardClaims: jwt.StandardClaims{Subject: userID},
	}
	ctx := context.WithValue(req.Context(), claims.TokenContextKey, c)
	return req.WithContext(ctx)
}

func TestGetTodos(t *testing.T) {
	t.Run("returns the envelope with count", func(t *testing.T) {
		m := new(mockTaskService)
		m.On("GetByUser", "user-1").Return([]*task.Task{
			{ID: "a", Title: "buy milk", UserID: "user-1"},
			{ID: "b", Title: "water plants", UserID: "user-1"},
		})
		handler := handlers.NewTodoHandler(m, testLogger())

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/todos", nil), "user-1")
		rr := httptest.NewRecorder()

		handler.GetTodos(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Success bool        `json:"success"`
			Data    []task.Task `json:"data"`
			Count   int         `json:"count"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "a", resp.Data[0].ID)
	})

	t.Run("empty list is data [], not null", func(t *testing.T) {
		m := new(mockTaskService)
		m.On("GetByUser", "user-1").Return(nil)
		handler := handlers.NewTodoHandler(m, testLogger())

		req := withClaims(httptest.NewRequest(http.MethodGet, "/api/todos", nil), "user-1")
		rr := httptest.NewRecorder()

		handler.GetTodos(rr, req)

		assert.Contains(t, rr.Body.String(), `"data":[]`)
		assert.Contains(t, rr.Body.String(), `"count":0`)
	})

	t.Run("no claims in context", func(t *testing.T) {
		handler := handlers.NewTodoHandler(new(mockTaskService), testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
		rr := httptest.NewRecorder()

		handler.GetTodos(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestCreateTodo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := new(mockTaskService)
		m.On("Create", mock.AnythingOfType("*task.Task"), "user-1").Return(nil)
		handler := handlers.NewTodoHandler(m, testLogger())

		body := `{"title":"buy milk","photoUri":"http://x/p.jpg","location":{"latitude":1,"longitude":2}}`
		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(body)), "user-1")
		rr := httptest.NewRecorder()

		handler.CreateTodo(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("empty title", func(t *testing.T) {
		m := new(mockTaskService)
		m.On("Create", mock.Anything, "user-1").Return(task.ErrEmptyTitle)
		handler := handlers.NewTodoHandler(m, testLogger())

		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{"title":""}`)), "user-1")
		rr := httptest.NewRecorder()

		handler.CreateTodo(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		handler := handlers.NewTodoHandler(new(mockTaskService), testLogger())

		req := withClaims(httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(`{oops`)), "user-1")
		rr := httptest.NewRecorder()

		handler.CreateTodo(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateTodo(t *testing.T) {
	t.Run("not found or foreign tasks are indistinguishable", func(t *testing.T) {
		m := new(mockTaskService)
		m.On("Update", mock.Anything, "user-1").Return(errors.New("task belongs to another user"))
		handler := handlers.NewTodoHandler(m, testLogger())

		req := withClaims(httptest.NewRequest(http.MethodPut, "/api/todos/abc123", strings.NewReader(`{"title":"x","completed":true}`)), "user-1")
		req = mux.SetURLVars(req, map[string]string{"task_id": "abc123"})
		rr := httptest.NewRecorder()

		handler.UpdateTodo(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("path id wins over body id", func(t *testing.T) {
		m := new(mockTaskService)
		var got *task.Task
		m.On("Update", mock.AnythingOfType("*task.Task"), "user-1").Run(func(args mock.Arguments) {
			got = args.Get(0).(*task.Task)
		}).Return(nil)
		handler := handlers.NewTodoHandler(m, testLogger())

		req := withClaims(httptest.NewRequest(http.MethodPut, "/api/todos/abc123", strings.NewReader(`{"id":"spoofed","title":"x"}`)), "user-1")
		req = mux.SetURLVars(req, map[string]string{"task_id": "abc123"})
		rr := httptest.NewRecorder()

		handler.UpdateTodo(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "abc123", got.ID)
	})
}

func TestDeleteTodo(t *testing.T) {
	m := new(mockTaskService)
	m.On("Delete", "abc123", "user-1").Return(nil)
	m.On("Delete", "ghost", "user-1").Return(errors.New("task not found"))
	handler := handlers.NewTodoHandler(m, testLogger())

	t.Run("success", func(t *testing.T) {
		req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/todos/abc123", nil), "user-1")
		req = mux.SetURLVars(req, map[string]string{"task_id": "abc123"})
		rr := httptest.NewRecorder()

		handler.DeleteTodo(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := withClaims(httptest.NewRequest(http.MethodDelete, "/api/todos/ghost", nil), "user-1")
		req = mux.SetURLVars(req, map[string]string{"task_id": "ghost"})
		rr := httptest.NewRecorder()

		handler.DeleteTodo(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
