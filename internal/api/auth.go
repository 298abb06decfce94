package api

import (
	"net/http" // HTTP status codes

	"debt_ledger/internal/auth"       // Auth service
	"debt_ledger/internal/domain"     // Domain models
	"debt_ledger/internal/middleware" // Session helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// LoginRequest accepts a username or an email in Username
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username or email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// ChangePasswordRequest is the regular password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// ForcePasswordChangeRequest is the first-login password change
type ForcePasswordChangeRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// ProfileRequest carries the editable profile fields
type ProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginResponse tells the client where to go next
type LoginResponse struct {
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

// LoginHandler verifies credentials, opens a session and sets the session cookie
func LoginHandler(svc *auth.Service, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		res, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		middleware.SetSessionCookie(c, res.Token, svc.SessionTTL(), secure)
		c.JSON(http.StatusOK, LoginResponse{
			User:     res.User,
			Redirect: middleware.LandingPage(res.User.MustChangePassword),
		})
	}
}

// LogoutHandler destroys the current session, if any, and clears the cookie
func LogoutHandler(svc *auth.Service, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := middleware.CurrentSession(c); ok {
			if err := svc.Logout(c.Request.Context(), sess); err != nil {
				respondError(c, err)
				return
			}
		}
		middleware.ClearSessionCookie(c, secure)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// StatusHandler reports whether the caller is signed in and which gates apply
func StatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"authenticated":      true,
			"isAdmin":            user.IsAdmin,
			"mustChangePassword": user.MustChangePassword,
			"user":               user,
		})
	}
}

// GetProfileHandler returns the current user
func GetProfileHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := middleware.CurrentSession(c)
		user, err := svc.Profile(c.Request.Context(), sess.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfileHandler saves the current user's profile fields
func UpdateProfileHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		sess, _ := middleware.CurrentSession(c)
		user, err := svc.UpdateProfile(c.Request.Context(), sess.UserID, auth.ProfileUpdate{
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ChangePasswordHandler replaces the password after checking the current one
func ChangePasswordHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		sess, _ := middleware.CurrentSession(c)
		if err := svc.ChangePassword(c.Request.Context(), sess, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed", "redirect": middleware.DashboardPage})
	}
}

// ForcePasswordChangeHandler sets a new password without the current one
func ForcePasswordChangeHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForcePasswordChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		sess, _ := middleware.CurrentSession(c)
		if err := svc.ForceChangePassword(c.Request.Context(), sess, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password changed", "redirect": middleware.DashboardPage})
	}
}
