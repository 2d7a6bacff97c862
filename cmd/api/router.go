package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domains/account/model"
	"bookstore-api/internal/metrics"
	"bookstore-api/internal/shared/middleware"
	"bookstore-api/pkg/container"
)

// route is one row of the API surface; every route declares its policy
type route struct {
	method  string
	path    string
	policy  middleware.Policy
	handler gin.HandlerFunc
}

var (
	anyone        = middleware.Anonymous()
	authenticated = middleware.Authenticated()
	admin         = middleware.RequireRoles(model.RoleAdministrator)
	customer      = middleware.RequireRoles(model.RoleCustomer)
	adminOrMember = middleware.RequireRoles(model.RoleAdministrator, model.RoleCustomer)
)

func SetupRouter(c *container.Container) *gin.Engine {
	metrics.Register()

	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	v1.GET("/health", healthCheckHandler(c))

	for _, r := range apiRoutes(c) {
		v1.Handle(r.method, r.path, middleware.Authorize(c.AuthService, r.policy), r.handler)
	}

	return router
}

func apiRoutes(c *container.Container) []route {
	return []route{
		// ========================================
		// USER ROUTES
		// ========================================
		{http.MethodPost, "/users/register", anyone, c.AccountHandler.Register},
		{http.MethodPost, "/users/login", anyone, c.AccountHandler.Login},

		// ========================================
		// AUTHOR ROUTES
		// ========================================
		{http.MethodGet, "/authors", anyone, c.AuthorHandler.List},
		{http.MethodGet, "/authors/:id", customer, c.AuthorHandler.Get},
		{http.MethodPost, "/authors", admin, c.AuthorHandler.Create},
		{http.MethodPut, "/authors/:id", adminOrMember, c.AuthorHandler.Update},
		{http.MethodDelete, "/authors/:id", admin, c.AuthorHandler.Delete},

		// ========================================
		// BOOK ROUTES
		// ========================================
		{http.MethodGet, "/books", authenticated, c.BookHandler.List},
		{http.MethodGet, "/books/:id", authenticated, c.BookHandler.Get},
		{http.MethodPost, "/books", admin, c.BookHandler.Create},
		{http.MethodPut, "/books/:id", admin, c.BookHandler.Update},
		{http.MethodDelete, "/books/:id", admin, c.BookHandler.Delete},
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus = "unreachable"
			health["status"] = "degraded"
		}

		// Check cache (Nop always answers)
		cacheStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "unreachable"
			health["status"] = "degraded"
		}

		health["services"] = gin.H{"database": dbStatus, "cache": cacheStatus}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
