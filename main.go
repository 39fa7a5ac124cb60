package main

import (
	"log"

	"github.com/clovermuaythai/booking-service/config"
	"github.com/clovermuaythai/booking-service/internal/handler"
	"github.com/clovermuaythai/booking-service/internal/middleware"
	"github.com/clovermuaythai/booking-service/internal/repository"
	"github.com/clovermuaythai/booking-service/internal/service"
	"github.com/clovermuaythai/booking-service/pkg/database"
	"github.com/clovermuaythai/booking-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	var (
		scheduleRepo repository.ScheduleRepository
		resStore     repository.ReservationStore
	)
	switch cfg.StorageBackend {
	case "postgres":
		db := database.NewPostgresDB(cfg.DSN())
		scheduleRepo = repository.NewPostgresScheduleRepository(db)
		resStore = repository.NewPostgresReservationStore(db)
	case "file":
		fs, err := repository.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("failed to open file store: %v", err)
		}
		scheduleRepo = fs.ScheduleRepository()
		resStore = fs.ReservationStore()
	default:
		log.Fatalf("unknown STORAGE_BACKEND %q (want postgres or file)", cfg.StorageBackend)
	}

	// Booking events feed the email worker; the service runs without a
	// broker if none is configured.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	bookingSvc := service.NewBookingService(scheduleRepo, resStore, publisher)
	scheduleSvc := service.NewScheduleService(scheduleRepo, resStore)

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
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-service"})
	})

	requireAdmin := middleware.RequireAdmin(middleware.NewStaticTokenAuthorizer(cfg.AdminToken))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewScheduleHandler(scheduleSvc, bookingSvc).RegisterRoutes(e, requireAdmin)

	log.Printf("Booking Service starting on :%s (storage=%s)", cfg.ServerPort, cfg.StorageBackend)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
