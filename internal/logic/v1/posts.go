package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fransbask/Gamehub/internal/core/domain"
	"github.com/fransbask/Gamehub/middleware"
)

// BlogService implements post business rules. Posts have no validation
// and no author reference; whatever fields arrive are stored.
type BlogService struct {
	posts domain.PostRepository
}

// NewBlogService creates a new BlogService with the given repository.
func NewBlogService(posts domain.PostRepository) *BlogService {
	return &BlogService{posts: posts}
}

// CreatePost persists a new post and returns the stored row.
func (s *BlogService) CreatePost(ctx context.Context, fields domain.PostFields) (*domain.PostRow, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.create_post", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	row, err := s.posts.Create(ctx, fields)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert post: %w", err)
	}

	span.SetAttributes(attribute.Int64("post.id", row.ID))
	span.AddEvent("post.created")

	return row, nil
}

// ListPosts returns every post, newest first.
func (s *BlogService) ListPosts(ctx context.Context) ([]domain.PostRow, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.list_posts", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	posts, err := s.posts.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query posts: %w", err)
	}

	span.SetAttributes(attribute.Int("post.count", len(posts)))

	return posts, nil
}

// GetPost returns the post with the given ID, or ErrPostNotFound.
func (s *BlogService) GetPost(ctx context.Context, id int64) (*domain.PostRow, error) {
	ctx, span := middleware.StartSpan(ctx, "blog.get_post", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("post.id", id),
	))
	defer span.End()

	row, err := s.posts.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query post %d: %w", id, err)
	}
	if row == nil {
		span.SetAttributes(attribute.Bool("post.found", false))
		return nil, fmt.Errorf("lookup post %d: %w", id, ErrPostNotFound)
	}

	return row, nil
}
