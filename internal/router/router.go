// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/madiyara/file-vault/internal/config"
	"github.com/madiyara/file-vault/internal/handler"
	"github.com/madiyara/file-vault/internal/middleware"
)

// Register sets up the full route table.
//
// Unauthenticated: sign-up, sign-in and refresh (the refresh endpoint
// authenticates itself via the bearer refresh token, not the access
// guard). Everything else requires a valid access token: /info and
// /logout directly, the /file group as a whole. The redis response cache
// wraps only the two read endpoints of the file group.
func Register(e *echo.Echo, a *handler.AuthHandler, f *handler.FileHandler,
	cfg config.Config, cacheCfg config.CacheConfig, rdb *redis.Client) {

	e.GET("/healthz", handler.Health)

	e.POST("/signup", a.SignUp)
	e.POST("/signin", a.SignIn)
	e.POST("/signin/new_token", a.Refresh)

	guard := middleware.AccessGuard(cfg.AccessSecret)
	e.GET("/info", a.Info, guard)
	e.GET("/logout", a.Logout, guard)

	cache := middleware.ResponseCache(cacheCfg, rdb)

	g := e.Group("/file", guard)
	g.POST("/upload", f.Upload)
	g.GET("/list", f.List, cache)
	g.GET("/download/:id", f.Download)
	g.DELETE("/delete/:id", f.Delete)
	g.PUT("/update/:id", f.Update)
	g.GET("/:id", f.Get, cache)
}
