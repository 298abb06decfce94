package api

import (
	"context"       // Health check deadline
	"net/http"      // HTTP status codes
	"path/filepath" // Page file paths
	"time"          // Health check timeout

	"debt_ledger/internal/middleware" // Session helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Pinger is anything whose connectivity can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PageHandler serves STATIC_DIR/<page>.html
func PageHandler(staticDir, page string) gin.HandlerFunc {
	path := filepath.Join(staticDir, page+".html")
	return func(c *gin.Context) {
		c.File(path)
	}
}

// LoginPageHandler serves the login page to anonymous users and sends signed-in
// users to their landing page
func LoginPageHandler(staticDir string) gin.HandlerFunc {
	page := PageHandler(staticDir, "login")
	return func(c *gin.Context) {
		if sess, ok := middleware.CurrentSession(c); ok {
			c.Redirect(http.StatusFound, middleware.LandingPage(sess.MustChangePassword))
			return
		}
		page(c)
	}
}

// HealthHandler pings the database and redis
func HealthHandler(db Pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok", "redis": "ok"}
		healthy := true
		if err := db.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("Database health check failed")
			status["database"], healthy = "unavailable", false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis health check failed")
			status["redis"], healthy = "unavailable", false
		}
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
