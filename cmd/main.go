package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/sbilibin2017/todo-api/docs"
	"github.com/sbilibin2017/todo-api/internal/config"
	"github.com/sbilibin2017/todo-api/internal/events"
	"github.com/sbilibin2017/todo-api/internal/handlers"
	"github.com/sbilibin2017/todo-api/internal/httpx"
	"github.com/sbilibin2017/todo-api/internal/jwt"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/mailer"
	"github.com/sbilibin2017/todo-api/internal/middlewares"
	"github.com/sbilibin2017/todo-api/internal/migrations"
	"github.com/sbilibin2017/todo-api/internal/repositories"
	"github.com/sbilibin2017/todo-api/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title todo-api
// @version 1.0.0
// @description Multi-user to-do list API with signup, login and password reset
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run initializes the logger, database, optional Redis and Kafka clients and
// the HTTP server. It blocks until ctx is cancelled or a shutdown signal
// arrives.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.App.LogLevel, cfg.App.Env); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis, only needed for attempt throttling
	var limiter middlewares.Limiter
	if cfg.RateLimit.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		limiter = repositories.NewAttemptLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)
	}

	// Kafka writer
	var writer events.KafkaWriter
	if cfg.Kafka.Enabled() {
		writer = events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Log.Infof("Publishing events to Kafka topic %s", cfg.Kafka.Topic)
	}
	publisher := events.NewPublisher(writer)
	defer publisher.Close()

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWT.SecretKey),
		jwt.WithExpiration(cfg.JWT.Exp),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	todoReadRepo := repositories.NewTodoReadRepository(db, middlewares.GetTxFromContext)
	todoWriteRepo := repositories.NewTodoWriteRepository(db, middlewares.GetTxFromContext)

	var errorLog httpx.ErrorLogWriter
	if cfg.ErrorLog.Enabled {
		errorLog = repositories.NewErrorLogRepository(db)
	}
	responder := httpx.NewResponder(errorLog, cfg.App.IsProduction())

	// Initialize services
	authService := services.NewAuthService(
		userReadRepo,
		userWriteRepo,
		tokens,
		mailer.New(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.From),
		publisher,
		services.AuthConfig{
			ResetTokenTTL: cfg.Reset.TokenTTL,
			FrontendURL:   cfg.Reset.FrontendURL,
		},
	)
	todoService := services.NewTodoService(todoReadRepo, todoWriteRepo, publisher)

	r := newRouter(routerDeps{
		auth:           authService,
		todos:          todoService,
		tokens:         tokens,
		responder:      responder,
		db:             db,
		limiter:        limiter,
		trustedProxies: cfg.HTTP.TrustedProxies,
		corsOrigins:    cfg.HTTP.CORSOrigins,
		swaggerURL:     fmt.Sprintf("http://%s/swagger/doc.json", cfg.App.Addr()),
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s in %s mode", cfg.App.Addr(), cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// authAPI is everything the auth routes need.
type authAPI interface {
	handlers.Signuper
	handlers.Loginer
	handlers.PasswordForgetter
	handlers.PasswordResetter
}

// todoAPI is everything the todo routes need.
type todoAPI interface {
	handlers.TodoCreator
	handlers.TodoLister
	handlers.TodoUpdater
	handlers.TodoDeleter
	handlers.TodoToggler
}

type routerDeps struct {
	auth           authAPI
	todos          todoAPI
	tokens         middlewares.Tokener
	responder      *httpx.Responder
	db             *sqlx.DB
	limiter        middlewares.Limiter // nil disables throttling
	trustedProxies []netip.Prefix      // peers allowed to report the client address
	corsOrigins    []string
	swaggerURL     string
}

// newRouter mounts every route. Mutations of existing todos run inside one
// transaction per request.
func newRouter(d routerDeps) chi.Router {
	throttle := func(scope string) func(http.Handler) http.Handler {
		if d.limiter == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middlewares.RateLimitMiddleware(d.limiter, scope, d.responder)
	}

	r := chi.NewRouter()
	r.Use(middlewares.RealIPMiddleware(d.trustedProxies))
	r.Use(middlewares.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.CORSMiddleware(d.corsOrigins))

	r.Get("/health", handlers.NewHealthHandler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", handlers.NewSignupHandler(d.auth, d.responder))
		r.With(throttle("login")).Post("/login", handlers.NewLoginHandler(d.auth, d.responder))
		r.With(throttle("forgot-password")).Post("/forgot-password", handlers.NewForgotPasswordHandler(d.auth, d.responder))
		r.Put("/reset-password/{token}", handlers.NewResetPasswordHandler(d.auth, d.responder))
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(d.tokens, d.responder))

		r.Post("/", handlers.NewCreateTodoHandler(d.todos, d.responder))
		r.Get("/", handlers.NewListTodosHandler(d.todos, d.responder))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.TxMiddleware(d.db, d.responder))
			r.Put("/{id}", handlers.NewUpdateTodoHandler(d.todos, d.responder))
			r.Delete("/{id}", handlers.NewDeleteTodoHandler(d.todos, d.responder))
			r.Patch("/{id}/toggle", handlers.NewToggleTodoHandler(d.todos, d.responder))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.swaggerURL)))

	return r
}
