package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps the todo module's ServiceContainer for type-safe
// cross-module calls. It implements TodoPort.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for the todo services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// ListTodos lists todos, restricted to userID when non-empty.
func (a *todoAdapter) ListTodos(ctx context.Context, userID string) (*ListTodosResponse, error) {
	req := ListTodosRequest{UserID: userID}
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-todos",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-todos service call failed: %w", err)
	}
	return &resp, nil
}

// CreateTodo creates a new todo via the create-todo service.
func (a *todoAdapter) CreateTodo(ctx context.Context, req *CreateTodoRequest) (*CreateTodoResponse, error) {
	var resp CreateTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-todo",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-todo service call failed: %w", err)
	}
	return &resp, nil
}

// GetTodo retrieves a single todo by id.
func (a *todoAdapter) GetTodo(ctx context.Context, id string) (*TodoResponse, error) {
	req := GetTodoRequest{ID: id}
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-todo service call failed: %w", err)
	}
	return &resp, nil
}

// UpdateTodo edits a todo via the update-todo service.
func (a *todoAdapter) UpdateTodo(ctx context.Context, req *UpdateTodoRequest) (*UpdateTodoResponse, error) {
	var resp UpdateTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update-todo",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("update-todo service call failed: %w", err)
	}
	return &resp, nil
}

// ToggleTodo flips completion for a todo on behalf of userID.
func (a *todoAdapter) ToggleTodo(ctx context.Context, id, userID string) (*ToggleTodoResponse, error) {
	req := ToggleTodoRequest{ID: id, UserID: userID}
	var resp ToggleTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"toggle-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("toggle-todo service call failed: %w", err)
	}
	return &resp, nil
}

// DeleteTodo permanently removes a todo.
func (a *todoAdapter) DeleteTodo(ctx context.Context, id, userID string) error {
	req := DeleteTodoRequest{ID: id, UserID: userID}
	var resp DeleteTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("delete-todo service call failed: %w", err)
	}
	if !resp.Deleted {
		return fmt.Errorf("todo not deleted: %s", id)
	}
	return nil
}
