package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devconnector/post-service/internal/config"
	"github.com/devconnector/post-service/internal/handler"
	"github.com/devconnector/post-service/internal/repository"
	"github.com/devconnector/post-service/internal/repository/memory"
	"github.com/devconnector/post-service/internal/repository/postgres"
	"github.com/devconnector/post-service/internal/repository/redisrepo"
	"github.com/devconnector/post-service/internal/server"
	"github.com/devconnector/post-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := loadEnv(); err != nil {
		logger.Sugar().Warnf("failed to load .env file, using process environment: %s", err.Error())
	}

	if os.Getenv("ACCESS_SECRET") == "" {
		logger.Panic("ACCESS_SECRET must be set")
	}

	if err := initConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	var repos *repository.Repository
	var closers []func()

	switch storageType := viper.GetString("storage.type"); storageType {
	case "memory":
		repos = repository.New(memory.NewPostStore(), memory.NewUserStore(), redisrepo.NewWithDefault(memory.NewCache()))
		logger.Info("Using in-memory storage")
	case "", "postgres":
		dbConfig := config.DBConfig{
			Username: os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			DBName:   os.Getenv("POSTGRES_DATABASE"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}
		db, err := postgres.DB(ctx, dbConfig)
		if err != nil {
			logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
		}
		if err := db.Ping(ctx); err != nil {
			logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
		}
		closers = append(closers, db.Close)
		logger.Info("Successfully connected to PostgreSQL")

		if err := postgres.Migrate(db); err != nil {
			logger.Sugar().Panicf("failed to apply migrations: %s", err.Error())
		}

		redisOptions := &redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		}
		rdb := redis.NewClient(redisOptions)
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		closers = append(closers, func() {
			if err := rdb.Close(); err != nil {
				logger.Sugar().Errorf("failed to close redis client: %s", err.Error())
			}
		})
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

		pg := postgres.New(db, logger)
		repos = repository.New(pg.Post, pg.UserCache, redisrepo.New(rdb))
	default:
		logger.Sugar().Panicf("unknown storage type: %s", storageType)
	}

	services := service.New(logger, repos)
	handlers := handler.New(services, logger)

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           viper.GetString("app.port"),
		Handler:        handlers.InitRoutes(),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func(srv *server.Server, cfg config.ServerConfig) {
		if err := srv.Run(cfg); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}(srv, serverConfig)

	logger.Sugar().Infof("Server started on port %s", serverConfig.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shutdown http server: %s", err.Error())
	}

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

func loadEnv() error {
	return godotenv.Load()
}

func initConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName("app")
	viper.SetDefault("app.port", "8000")
	viper.SetDefault("storage.type", "postgres")
	viper.SetDefault("cache.ttl", time.Hour)
	return viper.ReadInConfig()
}
