// Package router wires the Gin engine: request logging, session resolution,
// and the per-route RBAC guard that is the single enforcement point for
// role-gated views.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abiwaumi/tablewater/internal/domain/rbac"
	"github.com/abiwaumi/tablewater/internal/server/handlers"
	"github.com/abiwaumi/tablewater/internal/service/auth"
)

// Deps carries the handlers the router mounts.
type Deps struct {
	Auth      *handlers.AuthHandler
	Records   *handlers.RecordsHandler
	Resources *handlers.ResourcesHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with all routes and middlewares.
func New(authSvc *auth.Service, deps Deps, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", deps.Auth.Login)

	authed := api.Group("", requireSession(authSvc))
	{
		authed.POST("/auth/logout", deps.Auth.Logout)
		authed.GET("/auth/me", deps.Auth.Me)
		authed.GET("/navigation", deps.Auth.Navigation)

		dashboard := authed.Group("/dashboard", requireRoute(rbac.RouteDashboard))
		{
			dashboard.GET("/stats", deps.Dashboard.Stats)
		}

		production := authed.Group("/production", requireRoute(rbac.RouteProduction))
		{
			production.GET("", deps.Records.ListProduction)
			production.POST("", deps.Records.CreateProduction)
		}

		sales := authed.Group("/sales", requireRoute(rbac.RouteSales))
		{
			sales.GET("", deps.Records.ListSales)
			sales.POST("", deps.Records.CreateSale)
		}

		revenue := authed.Group("/revenue", requireRoute(rbac.RouteRevenue))
		{
			revenue.GET("/summary", deps.Dashboard.RevenueSummary)
			revenue.GET("/expenses", deps.Records.ListExpenses)
		}

		// Expenses are recorded from the production side of the house, so
		// they share the sales route's role set.
		expenses := authed.Group("/expenses", requireRoute(rbac.RouteSales))
		{
			expenses.GET("", deps.Records.ListExpenses)
			expenses.POST("", deps.Records.CreateExpense)
		}

		resources := authed.Group("/resources", requireRoute(rbac.RouteResources))
		{
			resources.GET("", deps.Resources.List)
			resources.GET("/low-stock", deps.Resources.LowStock)
			resources.POST("", deps.Resources.Create)
			resources.PATCH("/:id", deps.Resources.Update)
			resources.DELETE("/:id", deps.Resources.Delete)
		}

		settings := authed.Group("/settings", requireRoute(rbac.RouteSettings))
		{
			settings.GET("/profile", deps.Auth.Me)
		}

		reports := authed.Group("/reports", requireRoute(rbac.RouteDashboard))
		{
			reports.GET("/daily", deps.Dashboard.DailyReports)
		}
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// requireSession resolves the Bearer token into a user. Missing or invalid
// sessions redirect to the login view.
func requireSession(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": "/login"})
			return
		}

		user, err := authSvc.CurrentUser(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": "/login"})
			return
		}

		c.Set(handlers.ContextUserKey, user)
		c.Set(handlers.ContextTokenKey, token)
		c.Next()
	}
}

// requireRoute denies roles outside the route's permission set. Denial is a
// normal redirect response, never an error; hiding a menu item is not
// enforcement, this guard is.
func requireRoute(route rbac.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := handlers.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated", "redirect": "/login"})
			return
		}

		if !rbac.IsAllowed(user.Role, route) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not permitted", "redirect": "/dashboard"})
			return
		}

		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
