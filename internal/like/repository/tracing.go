package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/article-likes/internal/like/domain"
)

const tracerName = "like-repository"

// TracingLikeRepository wraps a LikeRepository with one span per store call
type TracingLikeRepository struct {
	next   domain.LikeRepository
	tracer trace.Tracer
}

// NewTracingLikeRepository creates a new repository with tracing.
// A nil provider means the global one.
func NewTracingLikeRepository(next domain.LikeRepository, tp trace.TracerProvider) *TracingLikeRepository {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingLikeRepository{next: next, tracer: tp.Tracer(tracerName)}
}

// FindByArticleAndUser with tracing
func (r *TracingLikeRepository) FindByArticleAndUser(ctx context.Context, articleID, userID uint) (*domain.Like, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindByArticleAndUser",
		trace.WithAttributes(
			attribute.Int("like.article_id", int(articleID)),
			attribute.Int("like.user_id", int(userID)),
		),
	)
	defer span.End()

	like, err := r.next.FindByArticleAndUser(ctx, articleID, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("result.found", like != nil))
	return like, nil
}

// FindByArticle with tracing
func (r *TracingLikeRepository) FindByArticle(ctx context.Context, articleID uint, limit, offset int) ([]domain.Like, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindByArticle",
		trace.WithAttributes(
			attribute.Int("like.article_id", int(articleID)),
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	likes, err := r.next.FindByArticle(ctx, articleID, limit, offset)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(likes)))
	return likes, nil
}

// CountByArticle with tracing
func (r *TracingLikeRepository) CountByArticle(ctx context.Context, articleID uint) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "repository.CountByArticle",
		trace.WithAttributes(
			attribute.Int("like.article_id", int(articleID)),
		),
	)
	defer span.End()

	count, err := r.next.CountByArticle(ctx, articleID)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

// Create with tracing
func (r *TracingLikeRepository) Create(ctx context.Context, like *domain.Like) error {
	ctx, span := r.tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int("like.article_id", int(like.ArticleID)),
			attribute.Int("like.user_id", int(like.UserID)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, like); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int("like.id", int(like.ID)))
	return nil
}

// Delete with tracing
func (r *TracingLikeRepository) Delete(ctx context.Context, like *domain.Like) error {
	ctx, span := r.tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(
			attribute.Int("like.id", int(like.ID)),
		),
	)
	defer span.End()

	if err := r.next.Delete(ctx, like); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// recordError marks the span failed. Workflow outcomes such as a conflict
// are recorded as events but leave the span status unset.
func recordError(span trace.Span, err error) {
	span.RecordError(err)

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		span.SetAttributes(attribute.String("error.code", appErr.Code))
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
