package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User roles
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User represents a registered account
type User struct {
	ID        string    `json:"userId" gorm:"type:uuid;primaryKey;column:user_id"`
	FirstName string    `json:"firstName" gorm:"size:50;not null"`
	LastName  string    `json:"lastName" gorm:"size:50;not null"`
	Email     string    `json:"email" gorm:"size:100;not null;uniqueIndex"` // Ensure email is unique across all users
	Password  string    `json:"-" gorm:"size:255;not null"`                 // Store hashed password, ignore for JSON serialization
	Role      string    `json:"role" gorm:"type:varchar(20);default:'User'"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRequest defines the request body for user registration
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=4"`
}

// LoginRequest defines the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
