package todo

import (
	"strings"
	"time"
)

// Valid values for the Category field.
var ValidCategories = []string{"work", "personal", "shopping", "health", "other"}

// Valid values for the Priority field.
var ValidPriorities = []string{"low", "medium", "high"}

// Todo represents a single to-do record, the only persisted entity.
// Optional fields are nullable columns; a nil pointer means the field
// was never set (or was cleared).
type Todo struct {
	ID        string `gorm:"primaryKey;type:text"`
	Title     string `gorm:"not null;type:text"`
	Completed bool   `gorm:"not null;default:false"`
	Category  *string
	Priority  *string
	Deadline  *time.Time
	ImageURL  *string `gorm:"column:image_url"`
	UserID    *string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the Todo entity.
func (Todo) TableName() string {
	return "todos"
}

// IsValidCategory reports whether c is one of the allowed categories.
func IsValidCategory(c string) bool {
	return contains(ValidCategories, c)
}

// IsValidPriority reports whether p is one of the allowed priorities.
func IsValidPriority(p string) bool {
	return contains(ValidPriorities, p)
}

// CategoryList returns the allowed categories as a comma-separated string
// for use in validation messages.
func CategoryList() string {
	return strings.Join(ValidCategories, ", ")
}

// PriorityList returns the allowed priorities as a comma-separated string
// for use in validation messages.
func PriorityList() string {
	return strings.Join(ValidPriorities, ", ")
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
