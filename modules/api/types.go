package api

import "time"

// ErrorResponse is the error body shape for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// CreateTodoBody is the request body for POST /todos.
type CreateTodoBody struct {
	Title    string  `json:"title"`
	Category *string `json:"category"`
	Priority *string `json:"priority"`
	Deadline *string `json:"deadline"`
	ImageURL *string `json:"imageUrl"`
}

// CreatedResponse is the success body for POST /todos.
type CreatedResponse struct {
	ID string `json:"id"`
}

// SignupBody is the request body for POST /auth/signup.
type SignupBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginBody is the request body for POST /auth/login.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshBody is the request body for POST /auth/refresh.
type RefreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries issued tokens back to the client.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// UserResponse is the body for signup and /auth/me responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResponse is the success body for POST /images.
type UploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
