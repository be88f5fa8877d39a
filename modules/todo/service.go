package todo

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// opTimeout bounds every store access so a stalled external call maps to a
// server error instead of hanging the request.
const opTimeout = 10 * time.Second

// listTodos handles the list-todos service request.
func (m *TodoModule) listTodos(ctx context.Context, req ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	todos, err := m.repo.FindAll(ctx, req.UserID)
	if err != nil {
		return ListTodosResponse{}, fmt.Errorf("failed to list todos: %w", err)
	}

	resp := ListTodosResponse{
		Todos: make([]TodoResponse, 0, len(todos)),
	}
	for _, t := range todos {
		resp.Todos = append(resp.Todos, toTodoResponse(t))
	}
	return resp, nil
}

// createTodo handles the create-todo service request.
func (m *TodoModule) createTodo(ctx context.Context, req CreateTodoRequest, _ *mono.Msg) (CreateTodoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return CreateTodoResponse{}, ErrTitleRequired
	}

	now := time.Now()
	t := &domain.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Optional fields are stored only when a non-empty value was given.
	if req.Category != nil && *req.Category != "" {
		if !domain.IsValidCategory(*req.Category) {
			return CreateTodoResponse{}, fmt.Errorf("%w: Category must be one of: %s", ErrInvalidCategory, domain.CategoryList())
		}
		t.Category = req.Category
	}
	if req.Priority != nil && *req.Priority != "" {
		if !domain.IsValidPriority(*req.Priority) {
			return CreateTodoResponse{}, fmt.Errorf("%w: Priority must be one of: %s", ErrInvalidPriority, domain.PriorityList())
		}
		t.Priority = req.Priority
	}
	if req.Deadline != nil && *req.Deadline != "" {
		deadline, err := parseDeadline(*req.Deadline)
		if err != nil {
			return CreateTodoResponse{}, fmt.Errorf("%w: Could not parse deadline date", ErrInvalidDeadline)
		}
		t.Deadline = &deadline
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		t.ImageURL = req.ImageURL
	}
	if req.UserID != "" {
		userID := req.UserID
		t.UserID = &userID
	}

	if err := m.repo.Create(ctx, t); err != nil {
		return CreateTodoResponse{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return CreateTodoResponse{ID: t.ID}, nil
}

// getTodo handles the get-todo service request.
func (m *TodoModule) getTodo(ctx context.Context, req GetTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	t, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return TodoResponse{}, err
	}
	return toTodoResponse(t), nil
}

// updateTodo handles the update-todo service request. Merge policy is
// tri-state per optional field: key absent leaves the stored value
// untouched, explicit null clears it, a value validates and sets it.
func (m *TodoModule) updateTodo(ctx context.Context, req UpdateTodoRequest, _ *mono.Msg) (UpdateTodoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return UpdateTodoResponse{}, ErrTitleRequired
	}

	fields := map[string]any{
		"title":      title,
		"updated_at": time.Now(),
	}

	if req.CategorySet {
		if req.Category == nil || *req.Category == "" {
			fields["category"] = nil
		} else if !domain.IsValidCategory(*req.Category) {
			return UpdateTodoResponse{}, fmt.Errorf("%w: Category must be one of: %s", ErrInvalidCategory, domain.CategoryList())
		} else {
			fields["category"] = *req.Category
		}
	}
	if req.PrioritySet {
		if req.Priority == nil || *req.Priority == "" {
			fields["priority"] = nil
		} else if !domain.IsValidPriority(*req.Priority) {
			return UpdateTodoResponse{}, fmt.Errorf("%w: Priority must be one of: %s", ErrInvalidPriority, domain.PriorityList())
		} else {
			fields["priority"] = *req.Priority
		}
	}
	if req.DeadlineSet {
		if req.Deadline == nil || *req.Deadline == "" {
			fields["deadline"] = nil
		} else {
			deadline, err := parseDeadline(*req.Deadline)
			if err != nil {
				return UpdateTodoResponse{}, fmt.Errorf("%w: Could not parse deadline date", ErrInvalidDeadline)
			}
			fields["deadline"] = deadline
		}
	}

	// Precondition the mutation so a missing id reports not-found
	// consistently rather than a silent no-op update.
	t, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return UpdateTodoResponse{}, err
	}
	if err := authorizeMutation(t, req.UserID); err != nil {
		return UpdateTodoResponse{}, err
	}

	if err := m.repo.UpdateFields(ctx, req.ID, fields); err != nil {
		return UpdateTodoResponse{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return UpdateTodoResponse{ID: req.ID}, nil
}

// toggleTodo handles the toggle-todo service request. The caller's identity
// is required and must match the todo's owner. UpdatedAt is deliberately
// left alone: toggling is not an edit.
func (m *TodoModule) toggleTodo(ctx context.Context, req ToggleTodoRequest, _ *mono.Msg) (ToggleTodoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if req.UserID == "" {
		return ToggleTodoResponse{}, ErrAuthRequired
	}

	t, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return ToggleTodoResponse{}, err
	}
	if err := authorizeMutation(t, req.UserID); err != nil {
		return ToggleTodoResponse{}, err
	}

	completed := !t.Completed
	if err := m.repo.UpdateFields(ctx, req.ID, map[string]any{"completed": completed}); err != nil {
		return ToggleTodoResponse{}, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return ToggleTodoResponse{ID: req.ID, Completed: completed}, nil
}

// deleteTodo handles the delete-todo service request.
func (m *TodoModule) deleteTodo(ctx context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	t, err := m.repo.FindByID(ctx, req.ID)
	if err != nil {
		return DeleteTodoResponse{Deleted: false}, err
	}
	if err := authorizeMutation(t, req.UserID); err != nil {
		return DeleteTodoResponse{Deleted: false}, err
	}

	if err := m.repo.Delete(ctx, req.ID); err != nil {
		return DeleteTodoResponse{Deleted: false}, err
	}

	return DeleteTodoResponse{Deleted: true}, nil
}

// authorizeMutation enforces the ownership model: a todo with an owner may
// only be mutated by that owner. Ownerless todos are mutable by anyone.
func authorizeMutation(t *domain.Todo, userID string) error {
	if t.UserID == nil {
		return nil
	}
	if userID == "" {
		return ErrAuthRequired
	}
	if *t.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

// parseDeadline parses a deadline string. Date-only values resolve to
// midnight UTC of that day; full timestamps are accepted as RFC 3339 or the
// HTML datetime-local shape.
func parseDeadline(s string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// toTodoResponse converts a domain Todo to its wire shape.
func toTodoResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Category:  t.Category,
		Priority:  t.Priority,
		Deadline:  t.Deadline,
		ImageURL:  t.ImageURL,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
