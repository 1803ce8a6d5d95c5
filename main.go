package main

import (
	"context"
	"log"
	"os"

	"github.com/example/todo-api/modules/activity"
	"github.com/example/todo-api/modules/api"
	"github.com/example/todo-api/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Todo API - Fiber + mono ===")

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.Quiet {
		logLevel = mono.LogLevelError
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Order: independent modules first, then modules with dependencies
	// - activity: Event consumer (records todo activity)
	// - todo: Core domain (in-memory store, request-reply services, emits events)
	// - api: Driving adapter (Fiber HTTP server, depends on todo)
	modules := []mono.Module{
		activity.NewModule(activity.DefaultCapacity, logger.WithModule("activity")),
		todo.NewModule(logger.WithModule("todo")),
		api.NewModule(cfg.Host, cfg.Port, logger.WithModule("api")),
	}
	for _, m := range modules {
		if err := app.Register(m); err != nil {
			log.Fatalf("Failed to register module %s: %v", m.Name(), err)
		}
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

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

func printStartupInfo(cfg config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber")
	log.Println("  - Storage: in-memory (lost on restart)")
	log.Println("  - Todo events -> activity module")
	log.Println("")
	log.Printf("REST API Endpoints (http://%s:%d):", cfg.Host, cfg.Port)
	log.Println("  GET    /api/healthchecker  - Health check")
	log.Println("  GET    /api/todos          - List todos (?page=&limit=)")
	log.Println("  POST   /api/todos          - Create a todo")
	log.Println("  GET    /api/todos/:id      - Get a todo")
	log.Println("  PATCH  /api/todos/:id      - Update a todo")
	log.Println("  DELETE /api/todos/:id      - Delete a todo")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
