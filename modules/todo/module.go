package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/todo-app/domain/todo"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TodoModule provides the todo CRUD services.
type TodoModule struct {
	db     *gorm.DB
	repo   *TodoRepository
	dbPath string
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule backed by the SQLite database at dbPath.
func NewModule(dbPath string) *TodoModule {
	return &TodoModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// Start initializes the todo module.
func (m *TodoModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Todo{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.repo = NewTodoRepository(db)

	log.Printf("[todo] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *TodoModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[todo] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *TodoModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"list-todos", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list-todos", json.Unmarshal, json.Marshal, m.listTodos)
		}},
		{"create-todo", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create-todo", json.Unmarshal, json.Marshal, m.createTodo)
		}},
		{"get-todo", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-todo", json.Unmarshal, json.Marshal, m.getTodo)
		}},
		{"update-todo", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-todo", json.Unmarshal, json.Marshal, m.updateTodo)
		}},
		{"toggle-todo", func() error {
			return helper.RegisterTypedRequestReplyService(container, "toggle-todo", json.Unmarshal, json.Marshal, m.toggleTodo)
		}},
		{"delete-todo", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete-todo", json.Unmarshal, json.Marshal, m.deleteTodo)
		}},
	}

	for _, s := range services {
		if err := s.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", s.name, err)
		}
	}

	log.Printf("[todo] Registered services: list-todos, create-todo, get-todo, update-todo, toggle-todo, delete-todo")
	return nil
}
