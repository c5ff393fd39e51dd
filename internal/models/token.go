package models

import "time"

// AccessToken is the server-side record backing a bearer token. The JWT
// handed to the client carries the token's JTI; deleting the row revokes
// the token regardless of its signature expiry.
type AccessToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	JTI       string    `gorm:"size:36;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (AccessToken) TableName() string {
	return "access_tokens"
}
