package main

import (
	"context"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/smartcampus/allocator/config"
	"github.com/smartcampus/allocator/internal/audit"
	"github.com/smartcampus/allocator/internal/handler"
	"github.com/smartcampus/allocator/internal/middleware"
	"github.com/smartcampus/allocator/internal/seed"
	"github.com/smartcampus/allocator/internal/service"
	"github.com/smartcampus/allocator/internal/storage"
	"github.com/smartcampus/allocator/internal/store"
	"github.com/smartcampus/allocator/pkg/database"
	"github.com/smartcampus/allocator/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// Flat-file persistence for the entity set
	var states service.StateStore
	if cfg.StateFile != "" {
		states = storage.NewFileStateStore(cfg.StateFile)
	}

	// RabbitMQ publisher: allocation events for downstream consumers
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	// Postgres audit trail of allocation decisions
	var trail service.AuditTrail
	var recorder *audit.Recorder
	if cfg.DatabaseDSN != "" {
		db := database.NewPostgresDB(cfg.DatabaseDSN)
		recorder = audit.NewRecorder(db)
		trail = recorder
	}

	svc := service.NewAllocationService(store.New(), states, publisher, trail)

	if states != nil {
		if _, err := os.Stat(cfg.StateFile); err == nil {
			if err := svc.LoadState(ctx); err != nil {
				log.Fatalf("failed to load state from %s: %v", cfg.StateFile, err)
			}
			log.Printf("[Main] restored state from %s", cfg.StateFile)
		}
	}

	if cfg.SeedDemo {
		if err := seed.Demo(ctx, svc); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
	}

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "allocator"})
	})

	handler.NewAllocationHandler(svc).RegisterRoutes(e)
	if recorder != nil {
		handler.NewAuditHandler(recorder).RegisterRoutes(e)
	}

	log.Printf("Resource Allocation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
