package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/example/todo-app/internal/config"
	"github.com/example/todo-app/modules/api"
	"github.com/example/todo-app/modules/auth"
	"github.com/example/todo-app/modules/images"
	"github.com/example/todo-app/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Todo App ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(todo.NewModule(cfg.DBPath))
	app.Register(auth.NewModule(cfg.DBPath, cfg.JWT))
	app.Register(images.NewModule(cfg.NATSURL, cfg.ImageBucket))
	app.Register(api.NewModule(cfg.HTTPPort)) // Depends on the three above

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	base := fmt.Sprintf("http://localhost:%d", cfg.HTTPPort)
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (%s):", base)
	log.Println("")
	log.Println("  Account:")
	log.Println("  POST   /auth/signup        - Register a new user")
	log.Println("  POST   /auth/login         - Login and get tokens")
	log.Println("  POST   /auth/logout        - Clear the session cookie")
	log.Println("  POST   /auth/refresh       - Refresh access token")
	log.Println("  GET    /auth/me            - Current user (Bearer token)")
	log.Println("")
	log.Println("  Todos:")
	log.Println("  GET    /todos              - List todos")
	log.Println("  POST   /todos              - Create a todo")
	log.Println("  PUT    /todos/:id/edit     - Update a todo")
	log.Println("  PUT    /todos/:id/toggle   - Toggle completion (Bearer token)")
	log.Println("  DELETE /todos/:id          - Delete a todo")
	log.Println("")
	log.Println("  Images:")
	log.Println("  POST   /images             - Upload an image attachment")
	log.Println("  GET    /images/:key        - Download an image")
	log.Println("")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
