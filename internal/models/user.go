package models

import (
	"time"
)

// User represents a registered user
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Email        string    `gorm:"uniqueIndex;size:1000;not null" json:"email"`
	Tokens       int       `gorm:"not null;default:0" json:"tokens"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserBasic is the public view of a user
type UserBasic struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Tokens   int    `json:"tokens"`
}

// Basic builds the public view of the user
func (u *User) Basic() UserBasic {
	return UserBasic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Tokens:   u.Tokens,
	}
}
