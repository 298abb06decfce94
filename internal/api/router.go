// Package api exposes the ledger, auth and admin operations over HTTP.
package api

import (
	"net/http" // HTTP status codes

	"debt_ledger/internal/auth"       // Auth service
	"debt_ledger/internal/domain"     // Domain models
	"debt_ledger/internal/ledger"     // Ledger service
	"debt_ledger/internal/middleware" // Session and gating middleware

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Auth      *auth.Service
	Ledger    *ledger.Service
	DB        Pinger
	Redis     *redis.Client
	StaticDir string
	Currency  string // Statement currency label
	Secure    bool   // Secure cookies (production)
}

// NewRouter builds the gin engine with every API and page route.
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/healthz", HealthHandler(d.DB, d.Redis))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/static", d.StaticDir)

	session := middleware.SessionMiddleware(d.Auth, d.Secure)
	requireAuth := middleware.RequireAuth()
	passwordChanged := middleware.RequirePasswordChanged()

	apiGroup := r.Group("/api", session)

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/login", LoginHandler(d.Auth, d.Secure))   // Open a session
	authGroup.POST("/logout", LogoutHandler(d.Auth, d.Secure)) // Close the session
	authGroup.GET("/status", StatusHandler())                  // Public session check
	authGroup.PUT("/password", requireAuth, ChangePasswordHandler(d.Auth))
	authGroup.PUT("/force-password-change", requireAuth, ForcePasswordChangeHandler(d.Auth))
	authGroup.GET("/profile", requireAuth, passwordChanged, GetProfileHandler(d.Auth))
	authGroup.PUT("/profile", requireAuth, passwordChanged, UpdateProfileHandler(d.Auth))

	// Admin routes (admin only)
	adminGroup := apiGroup.Group("/admin", requireAuth, passwordChanged, middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", ListUsersHandler(d.Auth))
	adminGroup.POST("/users", CreateUserHandler(d.Auth))
	adminGroup.PUT("/users/:id", UpdateUserHandler(d.Auth))
	adminGroup.DELETE("/users/:id", DeleteUserHandler(d.Auth))
	adminGroup.PUT("/users/:id/reset-password", ResetPasswordHandler(d.Auth))

	// Ledger routes, always scoped to the session's user
	ledgerGroup := apiGroup.Group("", requireAuth, passwordChanged)
	for path, dir := range map[string]domain.Direction{
		"/creditors": domain.DirectionCreditor,
		"/debtors":   domain.DirectionDebtor,
	} {
		g := ledgerGroup.Group(path)
		g.GET("", ListPartiesHandler(d.Ledger, dir))
		g.POST("", CreatePartyHandler(d.Ledger, dir))
		g.GET("/:id", GetPartyHandler(d.Ledger, dir))
		g.PUT("/:id", UpdatePartyHandler(d.Ledger, dir))
		g.DELETE("/:id", DeletePartyHandler(d.Ledger, dir))
		g.GET("/:id/statement", StatementHandler(d.Ledger, dir, d.Currency))
	}
	ledgerGroup.GET("/payments", ListPaymentsHandler(d.Ledger))
	ledgerGroup.POST("/payments", CreatePaymentHandler(d.Ledger))
	ledgerGroup.DELETE("/payments/:id", DeletePaymentHandler(d.Ledger))
	ledgerGroup.GET("/dashboard/stats", DashboardStatsHandler(d.Ledger))

	// Page routes
	pages := r.Group("", session)
	pages.GET("/login", LoginPageHandler(d.StaticDir))
	pages.GET("/", middleware.PageGate(false), func(c *gin.Context) {
		c.Redirect(http.StatusFound, middleware.DashboardPage)
	})
	pages.GET("/change-password", middleware.PageGate(false), PageHandler(d.StaticDir, "change-password"))
	for _, page := range []string{"dashboard", "creditors", "debtors", "payments", "profile"} {
		pages.GET("/"+page, middleware.PageGate(false), PageHandler(d.StaticDir, page))
	}
	pages.GET("/admin", middleware.PageGate(true), PageHandler(d.StaticDir, "admin"))

	return r, nil
}
