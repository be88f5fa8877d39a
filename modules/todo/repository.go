package todo

import (
	"context"
	"errors"

	domain "github.com/example/todo-app/domain/todo"
	"gorm.io/gorm"
)

// TodoRepository handles todo persistence using GORM. It is the document
// store boundary: FindByID distinguishes "not found" from real failures so
// callers can precondition mutations.
type TodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{
		db: db,
	}
}

// Create inserts a new todo record.
func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByID finds a todo by id, returning ErrTodoNotFound when the id does
// not resolve.
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	var t domain.Todo
	result := r.db.WithContext(ctx).First(&t, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, result.Error
	}
	return &t, nil
}

// FindAll returns all todos ordered by creation time, newest first. When
// userID is non-empty the result is restricted to that owner.
func (r *TodoRepository) FindAll(ctx context.Context, userID string) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateFields applies a partial update: only the given columns are written,
// nil values clear the column. Timestamps are never touched implicitly; the
// caller includes updated_at when the operation calls for it.
func (r *TodoRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.Todo{}).Where("id = ?", id).UpdateColumns(fields).Error
}

// Delete permanently removes a todo, returning ErrTodoNotFound when the id
// does not resolve.
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}
