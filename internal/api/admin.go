package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"debt_ledger/internal/auth"       // Auth service
	"debt_ledger/internal/middleware" // Session helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateUserRequest is an admin-created account
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be valid
	Password string `json:"password" binding:"required"`    // Initial password, rotated on first login
	FullName string `json:"full_name"`                      // Optional display name
	Phone    string `json:"phone"`                          // Optional phone
	Address  string `json:"address"`                        // Optional address
	IsAdmin  bool   `json:"is_admin"`                       // Grants admin access
}

// UpdateUserRequest is an admin edit of an account
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be valid
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsAdmin  bool   `json:"is_admin"`
}

// ResetPasswordRequest carries the password chosen by the admin
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// ListUsersHandler returns one page of accounts
func ListUsersHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		users, total, err := svc.ListUsers(c.Request.Context(), page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		c.JSON(http.StatusOK, gin.H{
			"users":       users,      // List of users
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of users
			"total_pages": totalPages, // Total pages
		})
	}
}

// CreateUserHandler adds an account that must change its password on first login
func CreateUserHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := svc.CreateUser(c.Request.Context(), auth.NewUser{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
			Phone:    req.Phone,
			Address:  req.Address,
			IsAdmin:  req.IsAdmin,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// UpdateUserHandler edits an account
func UpdateUserHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := svc.UpdateUser(c.Request.Context(), id, auth.UserUpdate{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			Phone:    req.Phone,
			Address:  req.Address,
			IsAdmin:  req.IsAdmin,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteUserHandler removes an account and all of its ledger data
func DeleteUserHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		sess, _ := middleware.CurrentSession(c)
		if err := svc.DeleteUser(c.Request.Context(), sess.UserID, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

// ResetPasswordHandler sets a new password and forces the user to change it
func ResetPasswordHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := svc.ResetPassword(c.Request.Context(), id, req.NewPassword); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset", "must_change_password": true})
	}
}
