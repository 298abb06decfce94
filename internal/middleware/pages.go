package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Page landing targets.
const (
	LoginPage          = "/login"
	ChangePasswordPage = "/change-password"
	DashboardPage      = "/dashboard"
)

// LandingPage is where a signed-in user belongs: the password form while a change
// is pending, the dashboard otherwise.
func LandingPage(mustChangePassword bool) string {
	if mustChangePassword {
		return ChangePasswordPage
	}
	return DashboardPage
}

// PageGate applies the page redirect rules: anonymous users go to the login page,
// users with a pending password change go to the change form, and non-admins are
// sent away from admin pages.
func PageGate(adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		switch {
		case !ok:
			c.Redirect(http.StatusFound, LoginPage)
		case sess.MustChangePassword && c.Request.URL.Path != ChangePasswordPage:
			c.Redirect(http.StatusFound, ChangePasswordPage)
		case adminOnly && !sess.IsAdmin:
			c.Redirect(http.StatusFound, DashboardPage)
		default:
			c.Next()
			return
		}
		c.Abort()
	}
}
