// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered author account.
type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	// Password holds the bcrypt hash and is never serialized.
	Password  string    `gorm:"size:255;not null" json:"-"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
