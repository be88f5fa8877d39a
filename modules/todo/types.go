package todo

import (
	"context"
	"time"
)

// ListTodosRequest is the request for listing todos. UserID, when set, is a
// verified identity and restricts the list to that owner.
type ListTodosRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// ListTodosResponse is the response for listing todos.
type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// CreateTodoRequest is the request for creating a todo. Optional fields are
// pointers; a nil pointer means the field was not supplied.
type CreateTodoRequest struct {
	Title    string  `json:"title"`
	Category *string `json:"category,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Deadline *string `json:"deadline,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	UserID   string  `json:"user_id,omitempty"`
}

// CreateTodoResponse is the response for creating a todo.
type CreateTodoResponse struct {
	ID string `json:"id"`
}

// GetTodoRequest is the request for fetching a single todo.
type GetTodoRequest struct {
	ID string `json:"id"`
}

// UpdateTodoRequest is the request for editing a todo. The Set flags record
// whether the key was present in the client request body, so absent, null
// and value survive the service-bus round trip as three distinct states:
// absent leaves the stored field untouched, null clears it, a value sets it.
type UpdateTodoRequest struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    *string `json:"category,omitempty"`
	CategorySet bool    `json:"category_set,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	PrioritySet bool    `json:"priority_set,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	DeadlineSet bool    `json:"deadline_set,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
}

// UpdateTodoResponse is the response for editing a todo.
type UpdateTodoResponse struct {
	ID string `json:"id"`
}

// ToggleTodoRequest is the request for toggling completion. UserID is the
// verified identity of the caller and is required.
type ToggleTodoRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// ToggleTodoResponse is the response for toggling completion.
type ToggleTodoResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// DeleteTodoRequest is the request for deleting a todo.
type DeleteTodoRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
}

// DeleteTodoResponse is the response for deleting a todo.
type DeleteTodoResponse struct {
	Deleted bool `json:"deleted"`
}

// TodoResponse is the wire shape of a single todo. Deadline is always
// present and null when unset; the other optional fields are omitted when
// absent.
type TodoResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Completed bool       `json:"completed"`
	Category  *string    `json:"category,omitempty"`
	Priority  *string    `json:"priority,omitempty"`
	Deadline  *time.Time `json:"deadline"`
	ImageURL  *string    `json:"imageUrl,omitempty"`
	UserID    *string    `json:"userId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TodoPort defines the interface the API module uses to reach the todo
// services. Identity is always passed explicitly; there is no ambient auth
// state.
type TodoPort interface {
	ListTodos(ctx context.Context, userID string) (*ListTodosResponse, error)
	CreateTodo(ctx context.Context, req *CreateTodoRequest) (*CreateTodoResponse, error)
	GetTodo(ctx context.Context, id string) (*TodoResponse, error)
	UpdateTodo(ctx context.Context, req *UpdateTodoRequest) (*UpdateTodoResponse, error)
	ToggleTodo(ctx context.Context, id, userID string) (*ToggleTodoResponse, error)
	DeleteTodo(ctx context.Context, id, userID string) error
}
