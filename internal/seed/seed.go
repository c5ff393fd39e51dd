// Package seed provides helpers to create demo data for development
// databases. Not intended for production use.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers     int
	PostsPerUser int
	ShouldClean  bool
	// Password assigned to every seeded user; defaults to "secret123".
	Password string
}

// Factory builds and persists fake users and posts.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.Password == "" {
		opts.Password = "secret123"
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildUser constructs an unsaved user with a bcrypt-hashed password.
func (f *Factory) BuildUser() (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &models.User{
		// Name has a 6-character validation floor, so use first + last.
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Password: string(hashed),
	}, nil
}

// BuildPost constructs an unsaved post for the user with a random lifecycle
// state. Published and archived-after-publish posts carry a PublishedAt in
// the past; drafts never do.
func (f *Factory) BuildPost(user *models.User) *models.Post {
	post := &models.Post{
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 3, 5, "\n"),
		Status:      models.PostStatusDraft,
		UserID:      user.ID,
	}

	// Spread created_at over the last 90 days.
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	switch f.rng.Intn(3) {
	case 1:
		publishedAt := post.CreatedAt.Add(time.Duration(f.rng.Intn(48)+1) * time.Hour)
		post.Status = models.PostStatusPublished
		post.PublishedAt = &publishedAt
	case 2:
		post.Status = models.PostStatusArchived
		// Half of the archived posts were published first.
		if f.rng.Intn(2) == 0 {
			publishedAt := post.CreatedAt.Add(time.Duration(f.rng.Intn(48)+1) * time.Hour)
			post.PublishedAt = &publishedAt
		}
	}

	return post
}

// Seed populates the database with fake users and posts.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users with up to %d posts each...", opts.NumUsers, opts.PostsPerUser)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db, opts)

	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.BuildUser()
		if err != nil {
			return fmt.Errorf("failed to build user: %w", err)
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		numPosts := f.rng.Intn(opts.PostsPerUser + 1)
		for j := 0; j < numPosts; j++ {
			post := f.BuildPost(user)
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("failed to create post for user %d: %w", user.ID, err)
			}
		}
	}

	log.Println("Seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	for _, table := range []string{"access_tokens", "posts", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
