package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily_diet/internal/handlers"
	"daily_diet/internal/logger"
	"daily_diet/internal/repository"
	"daily_diet/internal/repository/cache"
	"daily_diet/internal/repository/db"
	"daily_diet/internal/server"
	"daily_diet/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the log level is honored
	cfgErr := loadConfig()

	log := logger.Get(logLevel())
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	wireSessionCache(repos, log)
	services := service.NewService(repos)
	apiHandler := handlers.NewHandler(services, log, sessionTTL())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func logLevel() string {
	if lvl := viper.GetString("log.level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

func sessionTTL() time.Duration {
	if hours := viper.GetInt("session.ttl_hours"); hours > 0 {
		return time.Duration(hours) * time.Hour
	}
	return 0 // handler applies its 7-day default
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "daily_diet.db")
		dbPath = "daily_diet.db"
	}
	return db.InitDB(dbPath)
}

// wireSessionCache decorates the Users repository with a Redis session-token
// cache when redis.addr is configured. Without it, every authenticated
// request resolves the token against SQLite, which is also fine.
func wireSessionCache(repos *repository.Repository, log *logger.Logger) {
	addr := viper.GetString("redis.addr")
	if addr == "" {
		return
	}

	ttl := time.Duration(viper.GetInt("redis.cache_ttl_minutes")) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	repos.Users = cache.NewSessionCache(repos.Users, rdb, ttl)
	log.Infow("session cache enabled", "addr", addr, "ttl", ttl)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "3333"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
