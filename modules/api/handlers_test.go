package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/example/todo-app/domain/user"
	"github.com/example/todo-app/modules/todo"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTodoPort implements todo.TodoPort for handler tests.
type mockTodoPort struct {
	listFunc   func(ctx context.Context, userID string) (*todo.ListTodosResponse, error)
	createFunc func(ctx context.Context, req *todo.CreateTodoRequest) (*todo.CreateTodoResponse, error)
	getFunc    func(ctx context.Context, id string) (*todo.TodoResponse, error)
	updateFunc func(ctx context.Context, req *todo.UpdateTodoRequest) (*todo.UpdateTodoResponse, error)
	toggleFunc func(ctx context.Context, id, userID string) (*todo.ToggleTodoResponse, error)
	deleteFunc func(ctx context.Context, id, userID string) error
}

func (m *mockTodoPort) ListTodos(ctx context.Context, userID string) (*todo.ListTodosResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return &todo.ListTodosResponse{Todos: []todo.TodoResponse{}}, nil
}

func (m *mockTodoPort) CreateTodo(ctx context.Context, req *todo.CreateTodoRequest) (*todo.CreateTodoResponse, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &todo.CreateTodoResponse{ID: "new-id"}, nil
}

func (m *mockTodoPort) GetTodo(ctx context.Context, id string) (*todo.TodoResponse, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTodoPort) UpdateTodo(ctx context.Context, req *todo.UpdateTodoRequest) (*todo.UpdateTodoResponse, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, req)
	}
	return &todo.UpdateTodoResponse{ID: req.ID}, nil
}

func (m *mockTodoPort) ToggleTodo(ctx context.Context, id, userID string) (*todo.ToggleTodoResponse, error) {
	if m.toggleFunc != nil {
		return m.toggleFunc(ctx, id, userID)
	}
	return &todo.ToggleTodoResponse{ID: id, Completed: true}, nil
}

func (m *mockTodoPort) DeleteTodo(ctx context.Context, id, userID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, userID)
	}
	return nil
}

// newTestApp mounts the todo handlers over a mock port, with a stub
// middleware injecting the given identity.
func newTestApp(port todo.TodoPort, userID string) *fiber.App {
	app := fiber.New()
	identity := func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(UserContextKey, &domain.Claims{UserID: userID})
		}
		return c.Next()
	}

	h := NewTodoHandlers(port)
	app.Get("/todos", identity, h.List)
	app.Post("/todos", identity, h.Create)
	app.Put("/todos/:id/edit", identity, h.Update)
	app.Put("/todos/:id/toggle", identity, h.Toggle)
	app.Delete("/todos/:id", identity, h.Delete)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	resp.Body.Close()
	return resp, decoded
}

func TestListPassesIdentity(t *testing.T) {
	var seenUserID string
	mock := &mockTodoPort{
		listFunc: func(_ context.Context, userID string) (*todo.ListTodosResponse, error) {
			seenUserID = userID
			return &todo.ListTodosResponse{Todos: []todo.TodoResponse{}}, nil
		},
	}

	app := newTestApp(mock, "u-9")
	resp, body := doJSON(t, app, http.MethodGet, "/todos", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "u-9", seenUserID)
	assert.Contains(t, body, "todos")
}

func TestCreateErrors(t *testing.T) {
	tests := []struct {
		name        string
		serviceErr  error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{
			name:       "missing title",
			serviceErr: errors.New("create-todo service call failed: title is required"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Title is required",
		},
		{
			name:        "bad category",
			serviceErr:  errors.New("create-todo service call failed: invalid category: Category must be one of: work, personal, shopping, health, other"),
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid category",
			wantDetails: "work, personal, shopping, health, other",
		},
		{
			name:        "bad priority",
			serviceErr:  errors.New("create-todo service call failed: invalid priority: Priority must be one of: low, medium, high"),
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid priority",
			wantDetails: "low, medium, high",
		},
		{
			name:        "bad deadline",
			serviceErr:  errors.New("create-todo service call failed: invalid deadline: Could not parse deadline date"),
			wantStatus:  http.StatusBadRequest,
			wantError:   "Invalid deadline",
			wantDetails: "Could not parse deadline date",
		},
		{
			name:       "store failure",
			serviceErr: errors.New("create-todo service call failed: database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTodoPort{
				createFunc: func(_ context.Context, _ *todo.CreateTodoRequest) (*todo.CreateTodoResponse, error) {
					return nil, tt.serviceErr
				},
			}
			app := newTestApp(mock, "")

			resp, body := doJSON(t, app, http.MethodPost, "/todos", map[string]any{"title": "whatever"})
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantDetails != "" {
				assert.Contains(t, body["details"], tt.wantDetails)
			}
		})
	}
}

func TestCreateSuccess(t *testing.T) {
	var seen *todo.CreateTodoRequest
	mock := &mockTodoPort{
		createFunc: func(_ context.Context, req *todo.CreateTodoRequest) (*todo.CreateTodoResponse, error) {
			seen = req
			return &todo.CreateTodoResponse{ID: "t-1"}, nil
		},
	}
	app := newTestApp(mock, "u-1")

	resp, body := doJSON(t, app, http.MethodPost, "/todos", map[string]any{
		"title":    "Walk the dog",
		"category": "personal",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "t-1", body["id"])
	require.NotNil(t, seen)
	assert.Equal(t, "Walk the dog", seen.Title)
	require.NotNil(t, seen.Category)
	assert.Equal(t, "personal", *seen.Category)
	assert.Nil(t, seen.Priority)
	assert.Equal(t, "u-1", seen.UserID)
}

func TestUpdateTriState(t *testing.T) {
	var seen *todo.UpdateTodoRequest
	mock := &mockTodoPort{
		updateFunc: func(_ context.Context, req *todo.UpdateTodoRequest) (*todo.UpdateTodoResponse, error) {
			seen = req
			return &todo.UpdateTodoResponse{ID: req.ID}, nil
		},
	}
	app := newTestApp(mock, "")

	// category absent, priority null, deadline a value
	resp, body := doJSON(t, app, http.MethodPut, "/todos/t-5/edit",
		json.RawMessage(`{"title":"new title","priority":null,"deadline":"2025-04-01"}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	require.NotNil(t, seen)
	assert.Equal(t, "t-5", seen.ID)
	assert.Equal(t, "new title", seen.Title)

	assert.False(t, seen.CategorySet, "absent key must not be marked set")
	assert.Nil(t, seen.Category)

	assert.True(t, seen.PrioritySet, "null must be marked set")
	assert.Nil(t, seen.Priority)

	assert.True(t, seen.DeadlineSet)
	require.NotNil(t, seen.Deadline)
	assert.Equal(t, "2025-04-01", *seen.Deadline)
}

func TestUpdateRejectsMalformedBody(t *testing.T) {
	app := newTestApp(&mockTodoPort{}, "")

	req := httptest.NewRequest(http.MethodPut, "/todos/t-5/edit", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMutationErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "not found",
			serviceErr: errors.New("toggle-todo service call failed: todo not found"),
			wantStatus: http.StatusNotFound,
			wantError:  "Todo not found",
		},
		{
			name:       "no credential",
			serviceErr: errors.New("toggle-todo service call failed: authentication required"),
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "wrong owner",
			serviceErr: errors.New("toggle-todo service call failed: todo belongs to another user"),
			wantStatus: http.StatusForbidden,
			wantError:  "Forbidden",
		},
		{
			name:       "backend failure",
			serviceErr: errors.New("toggle-todo service call failed: timeout"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockTodoPort{
				toggleFunc: func(_ context.Context, _, _ string) (*todo.ToggleTodoResponse, error) {
					return nil, tt.serviceErr
				},
			}
			app := newTestApp(mock, "u-1")

			resp, body := doJSON(t, app, http.MethodPut, "/todos/t-1/toggle", nil)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantError, body["error"])

			if tt.wantStatus == http.StatusNotFound {
				assert.Contains(t, body["details"], "t-1")
			}
		})
	}
}

func TestDeleteDoubleReportsNotFound(t *testing.T) {
	calls := 0
	mock := &mockTodoPort{
		deleteFunc: func(_ context.Context, _, _ string) error {
			calls++
			if calls > 1 {
				return errors.New("delete-todo service call failed: todo not found")
			}
			return nil
		},
	}
	app := newTestApp(mock, "")

	resp, body := doJSON(t, app, http.MethodDelete, "/todos/t-2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	resp, body = doJSON(t, app, http.MethodDelete, "/todos/t-2", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Todo not found", body["error"])
}
