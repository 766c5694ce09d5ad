// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered catalog user. The password column only ever
// holds a bcrypt hash and is excluded from every JSON response, as is the
// remember token.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"not null" json:"-"`
	RememberToken string    `gorm:"size:10" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
