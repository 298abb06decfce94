package middleware

import (
	"errors"
	"net/http"
	"time"

	"debt_ledger/internal/auth"
	"debt_ledger/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "ledger_session"

const (
	sessionKey = "session" // *auth.Session
	userKey    = "user"    // *domain.User
	userIDKey  = "userID"  // uint
)

// SessionMiddleware resolves the session cookie, if any, and stores the session and
// fresh user row in the context. It never rejects a request on its own.
func SessionMiddleware(svc *auth.Service, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie) // Missing cookie means anonymous
		if err != nil || token == "" {
			c.Next()
			return
		}
		sess, user, err := svc.Authenticate(c.Request.Context(), token)
		if errors.Is(err, domain.ErrUnauthorized) {
			ClearSessionCookie(c, secure) // Stale or forged cookie
			c.Next()
			return
		}
		if err != nil {
			logrus.WithError(err).Error("Failed to load session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.Set(sessionKey, sess)
		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// RequireAuth rejects API requests without a valid session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// RequirePasswordChanged blocks API requests while the user still has to rotate
// their password.
func RequirePasswordChanged() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if ok && sess.MustChangePassword {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "Password change required",
				"redirect": "/change-password",
			})
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session resolved by SessionMiddleware.
func CurrentSession(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok
}

// CurrentUser returns the user row loaded with the session.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// SetSessionCookie writes the session cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}
