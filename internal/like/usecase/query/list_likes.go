package query

import (
	"context"
	"fmt"
	"math"

	"github.com/tair/article-likes/internal/like/domain"
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ListLikesQuery represents the query to list one page of an article's likes
type ListLikesQuery struct {
	ArticleID uint
	Page      int // 1-indexed
	PageSize  int
}

// ListLikesHandler handles list likes query
type ListLikesHandler struct {
	repo domain.LikeRepository
}

// NewListLikesHandler creates a new list likes handler
func NewListLikesHandler(repo domain.LikeRepository) *ListLikesHandler {
	return &ListLikesHandler{repo: repo}
}

// Handle executes the list likes query. Unknown articles simply have no
// likes. Page size is not capped here.
func (h *ListLikesHandler) Handle(ctx context.Context, q ListLikesQuery) ([]domain.Like, error) {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	// an offset past math.MaxInt cannot hold any likes
	if q.Page-1 > math.MaxInt/q.PageSize {
		return []domain.Like{}, nil
	}
	offset := (q.Page - 1) * q.PageSize

	likes, err := h.repo.FindByArticle(ctx, q.ArticleID, q.PageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	if likes == nil {
		likes = []domain.Like{}
	}
	return likes, nil
}
