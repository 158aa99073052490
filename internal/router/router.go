package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/handler"
	"github.com/iliyamo/cinema-scheduler/internal/middleware"
)

// Handlers bundles the handler sets the router wires up.
type Handlers struct {
	Theaters  *handler.TheaterHandler
	Movies    *handler.MovieHandler
	Schedules *handler.ScheduleHandler
	Tickets   *handler.TicketHandler
}

// RegisterRoutes registers the unauthenticated health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the protected back-office surface under /v1.
// Every route requires a Bearer token from the identity service; the
// scheduler surface requires the SCHEDULER role, while the scanning
// gate also accepts SCANNER.  Schedule reads sit behind the Redis
// response cache, and the whole group behind the rate limiter.  rdb
// may be nil, which disables both.
func RegisterAPI(e *echo.Echo, cfg config.Config, h Handlers, rdb *redis.Client) {
	cacheCfg := config.LoadCacheConfig()

	v1 := e.Group("/v1")
	v1.Use(middleware.JWTAuth(cfg.JWTSecret))
	v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	sched := v1.Group("", middleware.RequireRole("SCHEDULER"))

	// Theater builder and catalog.
	sched.POST("/theaters", h.Theaters.CreateTheater)
	sched.GET("/theaters", h.Theaters.ListTheaters)
	sched.GET("/theaters/:id", h.Theaters.GetTheater)
	sched.DELETE("/theaters/:id", h.Theaters.DeleteTheater)

	// Movie catalog.
	sched.POST("/movies", h.Movies.CreateMovie)
	sched.GET("/movies", h.Movies.ListMovies)
	sched.GET("/movies/:id", h.Movies.GetMovie)
	sched.DELETE("/movies/:id", h.Movies.DeleteMovie)

	// Daily schedules.  The two read endpoints of the scheduling board
	// are cache-eligible; mutations bump the cache generation.
	respCache := middleware.NewRedisCache(cacheCfg, rdb)
	sched.GET("/schedules", h.Schedules.ListScheduleDates)
	sched.GET("/schedules/:date", h.Schedules.GetSchedule, respCache)
	sched.GET("/schedules/:date/preview", h.Schedules.PreviewSchedule, respCache)
	sched.PUT("/schedules/:date", h.Schedules.SaveSchedule)
	sched.POST("/schedules/:date/showtimes", h.Schedules.PlaceShowtime)
	sched.DELETE("/schedules/:date/showtimes/:id", h.Schedules.RemoveShowtime)
	sched.POST("/schedules/:date/copy", h.Schedules.CopySchedule)
	sched.POST("/schedules/:date/publish", h.Schedules.PublishSchedule)

	// Ticketing: issue from the scheduler back office, verify at the gate.
	sched.POST("/tickets", h.Tickets.IssueTicket)
	v1.POST("/tickets/verify", h.Tickets.VerifyTicket,
		middleware.RequireRole("SCHEDULER", "SCANNER"))
}
