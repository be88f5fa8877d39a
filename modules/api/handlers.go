package api

import (
	"encoding/json"
	"log"
	"strings"

	domaintodo "github.com/example/todo-app/domain/todo"
	"github.com/example/todo-app/modules/todo"
	"github.com/gofiber/fiber/v2"
)

// TodoHandlers contains the HTTP handlers for the todo endpoints.
type TodoHandlers struct {
	todos todo.TodoPort
}

// NewTodoHandlers creates a new TodoHandlers instance.
func NewTodoHandlers(todos todo.TodoPort) *TodoHandlers {
	return &TodoHandlers{todos: todos}
}

// List handles GET /todos. An authenticated request sees only its own
// todos; an anonymous one sees the full list.
func (h *TodoHandlers) List(c *fiber.Ctx) error {
	resp, err := h.todos.ListTodos(c.UserContext(), identityFromContext(c))
	if err != nil {
		log.Printf("[api] list todos failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal Server Error",
		})
	}
	return c.JSON(fiber.Map{"todos": resp.Todos})
}

// Create handles POST /todos.
func (h *TodoHandlers) Create(c *fiber.Ctx) error {
	var body CreateTodoBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Details: "Failed to parse request body",
		})
	}

	req := &todo.CreateTodoRequest{
		Title:    body.Title,
		Category: body.Category,
		Priority: body.Priority,
		Deadline: body.Deadline,
		ImageURL: body.ImageURL,
		UserID:   identityFromContext(c),
	}

	resp, err := h.todos.CreateTodo(c.UserContext(), req)
	if err != nil {
		return h.createError(c, err)
	}
	return c.JSON(CreatedResponse{ID: resp.ID})
}

// Update handles PUT /todos/:id/edit. The body is decoded key-by-key so
// absent, null and value stay distinguishable for the merge policy.
func (h *TodoHandlers) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Details: "Todo ID is required",
		})
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil || raw == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Details: "Failed to parse request body",
		})
	}

	req := &todo.UpdateTodoRequest{
		ID:     id,
		UserID: identityFromContext(c),
	}

	if v, ok := raw["title"]; ok {
		if err := json.Unmarshal(v, &req.Title); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "Invalid request",
				Details: "Failed to parse request body",
			})
		}
	}

	var parseErr error
	req.Category, req.CategorySet, parseErr = optionalString(raw, "category")
	if parseErr == nil {
		req.Priority, req.PrioritySet, parseErr = optionalString(raw, "priority")
	}
	if parseErr == nil {
		req.Deadline, req.DeadlineSet, parseErr = optionalString(raw, "deadline")
	}
	if parseErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid request",
			Details: "Failed to parse request body",
		})
	}

	resp, err := h.todos.UpdateTodo(c.UserContext(), req)
	if err != nil {
		return h.mutationError(c, err, id)
	}

	return c.JSON(SuccessResponse{
		Success: true,
		Message: "Todo updated successfully",
		ID:      resp.ID,
	})
}

// Toggle handles PUT /todos/:id/toggle. The required-bearer middleware has
// already established the caller's identity.
func (h *TodoHandlers) Toggle(c *fiber.Ctx) error {
	id := c.Params("id")

	if _, err := h.todos.ToggleTodo(c.UserContext(), id, identityFromContext(c)); err != nil {
		return h.mutationError(c, err, id)
	}
	return c.JSON(SuccessResponse{Success: true})
}

// Delete handles DELETE /todos/:id.
func (h *TodoHandlers) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.todos.DeleteTodo(c.UserContext(), id, identityFromContext(c)); err != nil {
		return h.mutationError(c, err, id)
	}
	return c.JSON(SuccessResponse{Success: true})
}

// createError maps create-todo failures to the POST /todos response shapes.
func (h *TodoHandlers) createError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "title is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Title is required",
		})
	case strings.Contains(errStr, "invalid category"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid category",
			Details: "Category must be one of: " + domaintodo.CategoryList(),
		})
	case strings.Contains(errStr, "invalid priority"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid priority",
			Details: "Priority must be one of: " + domaintodo.PriorityList(),
		})
	case strings.Contains(errStr, "invalid deadline"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid deadline",
			Details: "Could not parse deadline date",
		})
	default:
		log.Printf("[api] create todo failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal Server Error",
		})
	}
}

// mutationError maps update/toggle/delete failures onto the HTTP error
// taxonomy. Service errors cross the bus as messages, so matching is by
// substring, the same way failures are classified elsewhere in the app.
func (h *TodoHandlers) mutationError(c *fiber.Ctx, err error, id string) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "title is required"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Validation failed",
			Details: "Title is required",
		})
	case strings.Contains(errStr, "invalid category"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid category",
			Details: "Category must be one of: " + domaintodo.CategoryList(),
		})
	case strings.Contains(errStr, "invalid priority"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid priority",
			Details: "Priority must be one of: " + domaintodo.PriorityList(),
		})
	case strings.Contains(errStr, "invalid deadline"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "Invalid deadline",
			Details: "Could not parse deadline date",
		})
	case strings.Contains(errStr, "todo not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "Todo not found",
			Details: "No todo found with ID: " + id,
		})
	case strings.Contains(errStr, "authentication required"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "Unauthorized",
		})
	case strings.Contains(errStr, "belongs to another user"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error: "Forbidden",
		})
	default:
		log.Printf("[api] todo mutation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Internal Server Error",
		})
	}
}

// optionalString reads a tri-state string field from a decoded JSON object:
// (nil, false) when the key is absent, (nil, true) for an explicit null and
// (&value, true) for a string value.
func optionalString(raw map[string]json.RawMessage, key string) (*string, bool, error) {
	v, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	if string(v) == "null" {
		return nil, true, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, true, err
	}
	return &s, true, nil
}
