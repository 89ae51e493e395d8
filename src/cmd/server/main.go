package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"orghierarchy/src/adapters/http"
	"orghierarchy/src/helper/env"
	"orghierarchy/src/infra/postgres"
	"orghierarchy/src/infra/redis"
	"orghierarchy/src/repositories"
	"orghierarchy/src/services/hierarchy"

	"go.uber.org/fx"

	nethttp "net/http"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting hierarchy API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newHierarchyQueryRepository,
			newCachedHierarchyRepository,
			newHierarchyWriteRepository,
			newEmployeeRepository,
			newHierarchyService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.MustGetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

func newRedisClient() *redis.RedisClient {
	redisHosts := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
}

func newHierarchyQueryRepository(readWriteClient *postgres.ReadWriteClient) *repositories.HierarchyQueryRepository {
	return repositories.NewHierarchyQueryRepository(readWriteClient.GetReadPool())
}

func newCachedHierarchyRepository(
	hierarchyQueryRepository *repositories.HierarchyQueryRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedHierarchyRepository {
	return repositories.NewCachedHierarchyRepository(hierarchyQueryRepository, redisClient)
}

func newHierarchyWriteRepository(
	readWriteClient *postgres.ReadWriteClient,
	cachedHierarchyRepository *repositories.CachedHierarchyRepository,
) *repositories.HierarchyWriteRepository {
	return repositories.NewHierarchyWriteRepository(readWriteClient.GetWritePool(), cachedHierarchyRepository)
}

func newEmployeeRepository(readWriteClient *postgres.ReadWriteClient) *repositories.EmployeeRepository {
	return repositories.NewEmployeeRepository(readWriteClient.GetWritePool())
}

func newHierarchyService(
	hierarchyQueryRepository *repositories.HierarchyQueryRepository,
	cachedHierarchyRepository *repositories.CachedHierarchyRepository,
	hierarchyWriteRepository *repositories.HierarchyWriteRepository,
	employeeRepository *repositories.EmployeeRepository,
) *hierarchy.HierarchyService {
	return hierarchy.NewHierarchyService(hierarchyQueryRepository, cachedHierarchyRepository, hierarchyWriteRepository, employeeRepository)
}

func newServer(
	logger *slog.Logger,
	hierarchyService *hierarchy.HierarchyService,
	employeeRepository *repositories.EmployeeRepository,
) *http.Server {
	port := env.GetInt("SERVER_PORT", 8888)

	return http.NewServer(logger, port, hierarchyService, employeeRepository)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != nethttp.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}
