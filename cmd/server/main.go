package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/madiyara/file-vault/internal/config"
	"github.com/madiyara/file-vault/internal/database"
	"github.com/madiyara/file-vault/internal/handler"
	"github.com/madiyara/file-vault/internal/queue"
	"github.com/madiyara/file-vault/internal/repository"
	"github.com/madiyara/file-vault/internal/router"
	"github.com/madiyara/file-vault/internal/storage"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Error("database migrate failed", "err", err)
		os.Exit(1)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, response cache disabled")
	}

	auth := handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db))
	files := handler.NewFileHandler(repository.NewFileRepo(db), storage.NewDisk(cfg.PublicDir), log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	router.Register(e, auth, files, cfg, config.LoadCacheConfig(), rdb)

	go queue.StartUploadConsumer(log)

	addr := ":" + cfg.Port
	log.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
