package query

import (
	"context"
	"fmt"

	"github.com/tair/article-likes/internal/like/domain"
)

// CountLikesQuery represents the query for an article's like total
type CountLikesQuery struct {
	ArticleID uint
}

// CountLikesHandler handles count likes query
type CountLikesHandler struct {
	repo domain.LikeRepository
}

// NewCountLikesHandler creates a new count likes handler
func NewCountLikesHandler(repo domain.LikeRepository) *CountLikesHandler {
	return &CountLikesHandler{repo: repo}
}

// Handle executes the count likes query
func (h *CountLikesHandler) Handle(ctx context.Context, q CountLikesQuery) (int64, error) {
	count, err := h.repo.CountByArticle(ctx, q.ArticleID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}
