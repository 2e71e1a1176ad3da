package main

import (
	"context"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"users_backend/internal/app/di"
	"users_backend/internal/app/router"
	authhandler "users_backend/internal/feature/auth/transport/handler"
	authusecase "users_backend/internal/feature/auth/usecase"
	"users_backend/internal/feature/avatar"
	servicesadapters "users_backend/internal/feature/services/adapters"
	servicehandler "users_backend/internal/feature/services/transport/handler"
	servicesusecase "users_backend/internal/feature/services/usecase"
	usersadapters "users_backend/internal/feature/users/adapters"
	userhandler "users_backend/internal/feature/users/transport/handler"
	usersusecase "users_backend/internal/feature/users/usecase"
	"users_backend/internal/platform/cache"
	"users_backend/internal/platform/config"
	infradb "users_backend/internal/platform/db"
	"users_backend/internal/platform/metrics"
	infraredis "users_backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	db := infradb.OpenDB(cfg)

	// Redis is optional: token storage and user caching fall back to
	// SQL-only when it is down.
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Storage + avatar manager
	store, err := di.NewStorageProvider(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	avatars := avatar.NewManager(store, cfg.Storage.RootDir)

	// Repositories
	userRepo := usersadapters.NewUserGorm(db)
	cachedUserRepo := cache.NewCachingUserRepository(rdb, 5*time.Minute, userRepo, "users")
	tokenRepo := di.NewTokenRepository(rdb, db)
	serviceRepo := servicesadapters.NewServiceGorm(db)

	// Usecases
	failureDelay := time.Duration(cfg.Auth.LoginFailureDelaySeconds) * time.Second
	authUC := authusecase.NewAuthUsecase(userRepo, tokenRepo, failureDelay)
	userUC := usersusecase.NewUserUsecase(cachedUserRepo, avatars, tokenRepo)
	serviceUC := servicesusecase.NewServiceUsecase(serviceRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	userH := userhandler.NewUserHandler(userUC)
	serviceH := servicehandler.NewServiceHandler(serviceUC)

	metrics.Register()
	r := router.NewRouter(authH, userH, serviceH, authUC)

	// Serve uploaded files directly when running on local disk.
	if cfg.Storage.Provider != "s3" {
		r.Static("/storage", cfg.Storage.LocalRoot)
	}

	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
