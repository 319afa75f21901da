// Package app assembles the HTTP application from its repositories and services.
package app

import (
	"time"

	"carrental/internal/handlers"
	"carrental/internal/middleware"
	"carrental/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the collaborators injected into the application.
type Deps struct {
	Store     *Store
	Publisher services.EventPublisher // nil disables events
	Exchange  string
	JWTSecret string
	TokenTTL  time.Duration
	Logger    *zap.Logger
}

// App is the assembled HTTP application and the services behind it.
type App struct {
	Fiber         *fiber.App
	AuthService   *services.AuthService
	CarService    *services.CarService
	RentalService *services.RentalService
}

// New wires services, handlers and middleware into a Fiber app.
// Each call uses its own Prometheus registry.
func New(deps Deps) *App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	authService := services.NewAuthService(deps.Store.Users, deps.JWTSecret, deps.TokenTTL, log)
	carService := services.NewCarService(deps.Store.Cars, deps.Publisher, deps.Exchange, log)
	rentalService := services.NewRentalService(deps.Store.Rentals, deps.Store.Cars, deps.Publisher, deps.Exchange, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	app := fiber.New(fiber.Config{
		AppName:      "carrental",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(log))
	app.Use(metrics.Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": deps.Publisher != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	auth := middleware.AuthRequired(authService, log)
	apiV1 := app.Group("/v1")
	handlers.NewAuthHandler(authService, log).RegisterRoutes(apiV1, auth)
	handlers.NewCarHandler(carService, log).RegisterRoutes(apiV1, auth)
	handlers.NewRentalHandler(rentalService, log).RegisterRoutes(apiV1, auth)

	return &App{
		Fiber:         app,
		AuthService:   authService,
		CarService:    carService,
		RentalService: rentalService,
	}
}
