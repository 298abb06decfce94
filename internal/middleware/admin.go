package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the admin flag that SessionMiddleware refreshed from the
// database on this request
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c) // Get session from context
		if !ok {
			// No session, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check if user is an admin
		if !sess.IsAdmin {
			// If not admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}
