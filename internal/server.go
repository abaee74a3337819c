package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghaniswara/medi-quest/internal/config"
	"github.com/ghaniswara/medi-quest/internal/datastore/postgres"
	redisClient "github.com/ghaniswara/medi-quest/internal/datastore/redis"
	"github.com/ghaniswara/medi-quest/internal/entity"
	donationRepo "github.com/ghaniswara/medi-quest/internal/repository/donation"
	statsCache "github.com/ghaniswara/medi-quest/internal/repository/stats"
	supplyRepo "github.com/ghaniswara/medi-quest/internal/repository/supply"
	userRepo "github.com/ghaniswara/medi-quest/internal/repository/user"
	routesV1 "github.com/ghaniswara/medi-quest/internal/routes/v1"
	authUseCase "github.com/ghaniswara/medi-quest/internal/usecase/auth"
	"github.com/ghaniswara/medi-quest/internal/usecase/donation"
	"github.com/ghaniswara/medi-quest/internal/usecase/supply"
	"github.com/ghaniswara/medi-quest/pkg/jwt"
	"github.com/go-redis/redis"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	writer     io.Writer
	httpServer *http.Server
	database   Pinger
	now        func() time.Time
}

// NewLogger returns the leveled logger shared by echo and the use cases.
func NewLogger(w io.Writer) *log.Logger {
	logger := log.New("medi-quest")
	logger.SetOutput(w)
	logger.SetLevel(log.INFO)
	return logger
}

func NewServer(w io.Writer, addr string, database Pinger, useCases routesV1.UseCases) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger = NewLogger(w)

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Output: w}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		writer: w,
		httpServer: &http.Server{
			Addr:    addr,
			Handler: e,
		},
		database: database,
		now:      time.Now,
	}

	server.RegisterRoutes(e)
	routesV1.InitV1Routes(e, useCases)
	return server
}

func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/", s.handleRoot)
	e.GET("/healthz", s.handleHealthCheck)
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) StartServer() error {
	fmt.Fprintf(s.writer, "Server starting on %s\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, entity.ServerStatusResponse{
		Message:   "Server is running smoothly",
		Timestamp: s.now(),
	})
}

func (s *Server) handleHealthCheck(c echo.Context) error {
	if err := s.database.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Run wires the service from the environment named by args[1] (default "dev") and
// serves until ctx is cancelled.
func Run(ctx context.Context, w io.Writer, args []string) error {
	env := "dev"
	if len(args) > 1 {
		env = args[1]
	}

	cfg, err := config.NewConfig(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.Get("JWT_SECRET") == "" {
		return errors.New("JWT_SECRET is not set")
	}
	expiresIn, err := cfg.GetDuration("EXPIRES_IN")
	if err != nil {
		return err
	}
	cacheTTL, err := cfg.GetDuration("STATS_CACHE_TTL")
	if err != nil {
		return err
	}

	db, err := postgres.InitializeDB(
		cfg.Get("POSTGRES_USER"),
		cfg.Get("POSTGRES_PASSWORD"),
		cfg.Get("POSTGRES_DB_NAME"),
		cfg.Get("POSTGRES_HOST"),
		cfg.Get("POSTGRES_PORT"),
	)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Connected to Postgres")

	if err := postgres.Migrate(db); err != nil {
		return err
	}

	var rdb *redis.Client
	if host := cfg.Get("REDIS_HOST"); host != "" {
		rdb, err = redisClient.NewRedis(host, cfg.Get("REDIS_PORT"))
		if err != nil {
			return err
		}
		defer rdb.Close()
		fmt.Fprintln(w, "Connected to Redis")
	}

	useCases, err := NewUseCases(db, rdb, jwt.NewIssuer(cfg.Get("JWT_SECRET"), expiresIn), cacheTTL, NewLogger(w))
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	server := NewServer(w, ":"+cfg.Get("PORT"), sqlDB, useCases)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.StartServer()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	fmt.Fprintln(w, "Server shutting down")
	return server.Shutdown(shutdownCtx)
}

// NewUseCases builds every repository and use case on top of db and, when rdb is
// not nil, a redis stats cache. Cache warnings go to logger.
func NewUseCases(db *gorm.DB, rdb *redis.Client, issuer *jwt.Issuer, cacheTTL time.Duration, logger *log.Logger) (routesV1.UseCases, error) {
	if db == nil {
		return routesV1.UseCases{}, errors.New("nil database")
	}
	cache := statsCache.New(rdb, cacheTTL)

	return routesV1.UseCases{
		Auth:     authUseCase.New(userRepo.New(db), issuer),
		Supply:   supply.NewSupplyUseCase(supplyRepo.New(db), cache, logger),
		Donation: donation.NewDonationUseCase(donationRepo.New(db), cache, logger),
	}, nil
}
