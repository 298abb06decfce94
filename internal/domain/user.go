package domain

import "time"

// MinPasswordLength is the shortest password accepted on any password path.
const MinPasswordLength = 5

// User Model
type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`                         // Primary key
	Username           string     `gorm:"size:64;uniqueIndex;not null" json:"username"` // Lower-cased, unique
	Email              string     `gorm:"size:191;uniqueIndex;not null" json:"email"`   // Lower-cased, unique
	PasswordHash       string     `gorm:"not null" json:"-"`                            // bcrypt hash
	FullName           string     `gorm:"size:191" json:"full_name"`
	Phone              string     `gorm:"size:64" json:"phone"`
	Address            string     `gorm:"size:255" json:"address"`
	IsAdmin            bool       `gorm:"not null" json:"is_admin"`
	MustChangePassword bool       `gorm:"not null" json:"must_change_password"`
	LastLogin          *time.Time `json:"last_login"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DisplayName returns the full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
