package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/database"
	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/kvstore"
	"github.com/iliyamo/cinema-scheduler/internal/middleware"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/router"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
	"github.com/iliyamo/cinema-scheduler/internal/ticket"
)

func main() {
	// .env is optional; real deployments export the variables.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	theaterRepo := repository.NewTheaterRepo(db)
	movieRepo := repository.NewMovieRepo(db)

	// Redis backs schedules, the response cache and the rate limiter.
	// Without it the schedule store runs on the in-memory fake, which
	// is fine for development but loses schedules on restart.
	rdb := config.NewRedisClient()
	var kv kvstore.Store
	if rdb != nil {
		kv = kvstore.NewRedis(rdb)
	} else {
		log.Println("redis unavailable; schedules held in memory only")
		kv = kvstore.NewMemory()
	}

	schedStore := schedule.NewStore(kv, theaterRepo, movieRepo)
	tickets := ticket.NewService(cfg.TicketSecret, kv, schedStore)

	scheduleHandler := handler.NewScheduleHandler(schedStore, theaterRepo)
	scheduleHandler.PublishEvent = queue.Publish
	if rdb != nil {
		cacheCfg := config.LoadCacheConfig()
		scheduleHandler.InvalidateCache = func(ctx context.Context) {
			middleware.BumpCache(ctx, cacheCfg, rdb)
		}
	}
	ticketHandler := handler.NewTicketHandler(tickets, schedStore)
	ticketHandler.PublishEvent = queue.Publish

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, cfg, router.Handlers{
		Theaters:  handler.NewTheaterHandler(theaterRepo),
		Movies:    handler.NewMovieHandler(movieRepo),
		Schedules: scheduleHandler,
		Tickets:   ticketHandler,
	}, rdb)

	// Broker consumer writes schedule/scan events to logs/schedule.log.
	go func() {
		if err := queue.StartScheduleConsumer(); err != nil {
			log.Printf("schedule consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
