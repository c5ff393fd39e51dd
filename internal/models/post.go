package models

import "time"

// PostStatus defines the lifecycle state of a post.
type PostStatus string

const (
	// PostStatusDraft is the state every post is created in.
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished indicates a post is visible in the published feed.
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived indicates a post was taken out of circulation.
	PostStatusArchived PostStatus = "archived"
)

// Valid reports whether s is one of the known lifecycle states.
// The switch is exhaustive on purpose; an unknown value must never
// silently pass a transition check.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post represents an article with a draft/published/archived lifecycle.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	// UserID is the exclusive owner; immutable after creation.
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"user"`
	// PublishedAt is set when the post transitions into published and is
	// deliberately NOT cleared when the post is archived.
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
