package service

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostService handles post creation, reads, edits, and lifecycle transitions.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Description string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost creates a post in draft state owned by the given user. The owner
// comes from the authenticated token, never from the request payload.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Status:      models.PostStatusDraft,
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost returns a single post with its author, in any lifecycle state.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPublished returns the public feed of published posts.
func (s *PostService) ListPublished(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.ListPublished(ctx)
}

// UpdatePost replaces the title and description of a post owned by the
// caller. A post owned by someone else is reported as not found, identically
// to a missing post, so the endpoint does not leak post existence.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	post.Title = in.Title
	post.Description = in.Description

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// PublishPost moves a post to published and stamps PublishedAt. Draft and
// archived posts can both be published; publishing a published post is a
// conflict. Any authenticated user may trigger the transition.
func (s *PostService) PublishPost(ctx context.Context, id uint) (*models.Post, error) {
	ctx, span := observability.StartSpan(ctx, "post.publish")
	defer span.End()
	span.SetAttributes(attribute.Int("post.id", int(id)))

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		observability.RecordTransition(string(models.PostStatusPublished), "not_found")
		observability.RecordError(ctx, err)
		return nil, err
	}

	switch post.Status {
	case models.PostStatusPublished:
		observability.RecordTransition(string(models.PostStatusPublished), "conflict")
		return nil, models.NewConflictError("Post already published")
	case models.PostStatusDraft, models.PostStatusArchived:
		now := time.Now()
		post.Status = models.PostStatusPublished
		post.PublishedAt = &now
	default:
		return nil, models.NewInternalError(errInvalidStatus(post.Status))
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		observability.RecordTransition(string(models.PostStatusPublished), "error")
		return nil, err
	}
	observability.RecordTransition(string(models.PostStatusPublished), "success")
	return post, nil
}

// ArchivePost moves a post to archived. PublishedAt is kept so republishing
// history survives; archiving an archived post is a conflict.
func (s *PostService) ArchivePost(ctx context.Context, id uint) (*models.Post, error) {
	ctx, span := observability.StartSpan(ctx, "post.archive")
	defer span.End()
	span.SetAttributes(attribute.Int("post.id", int(id)))

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		observability.RecordTransition(string(models.PostStatusArchived), "not_found")
		observability.RecordError(ctx, err)
		return nil, err
	}

	switch post.Status {
	case models.PostStatusArchived:
		observability.RecordTransition(string(models.PostStatusArchived), "conflict")
		return nil, models.NewConflictError("Post already archived")
	case models.PostStatusDraft, models.PostStatusPublished:
		post.Status = models.PostStatusArchived
	default:
		return nil, models.NewInternalError(errInvalidStatus(post.Status))
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		observability.RecordTransition(string(models.PostStatusArchived), "error")
		return nil, err
	}
	observability.RecordTransition(string(models.PostStatusArchived), "success")
	return post, nil
}

type errInvalidStatus models.PostStatus

func (e errInvalidStatus) Error() string {
	return "invalid post status: " + string(e)
}
