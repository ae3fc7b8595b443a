package auth

import "time"

// User is the authenticated account. Role data lives in the profile module;
// a user maps to zero or one profile per role.
type User struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	AccountType  string    `gorm:"column:account_type" json:"account_type"`
	FullName     string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
