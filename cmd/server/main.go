package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/suratpier/nightboat/internal/config"
	"github.com/suratpier/nightboat/internal/database"
	"github.com/suratpier/nightboat/internal/handler"
	"github.com/suratpier/nightboat/internal/queue"
	"github.com/suratpier/nightboat/internal/repository"
	"github.com/suratpier/nightboat/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient() // nil disables rate limiting and caching
	if rdb == nil {
		log.Print("redis unavailable; rate limiting and dashboard cache disabled")
	}

	users := repository.NewUserRepo(db)
	tickets := repository.NewTicketRepo(db)
	parcels := repository.NewParcelRepo(db)
	maintenances := repository.NewMaintenanceRepo(db)
	dashboard := repository.NewDashboardRepo(db)

	h := router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users),
		User:        handler.NewUserHandler(cfg, users),
		Ticket:      handler.NewTicketHandler(tickets),
		Parcel:      handler.NewParcelHandler(parcels),
		Maintenance: handler.NewMaintenanceHandler(maintenances),
		Dashboard:   handler.NewDashboardHandler(dashboard),
	}

	e := echo.New()
	router.Register(e, cfg, rdb, h)

	// Boarding-log consumer runs for the life of the process and reconnects
	// on its own.
	go func() {
		if err := queue.StartBoardingConsumer(); err != nil {
			log.Printf("boarding consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
