package query

import (
	"context"
	"fmt"

	"github.com/tair/article-likes/internal/like/domain"
)

// GetLikeStatusQuery asks whether a user currently likes an article
type GetLikeStatusQuery struct {
	ArticleID uint
	UserID    uint
}

// LikeStatus is the answer to GetLikeStatusQuery
type LikeStatus struct {
	ArticleID uint         `json:"article_id"`
	UserID    uint         `json:"user_id"`
	Liked     bool         `json:"liked"`
	Like      *domain.Like `json:"like,omitempty"`
}

// GetLikeStatusHandler handles like status query
type GetLikeStatusHandler struct {
	repo domain.LikeRepository
}

// NewGetLikeStatusHandler creates a new like status handler
func NewGetLikeStatusHandler(repo domain.LikeRepository) *GetLikeStatusHandler {
	return &GetLikeStatusHandler{repo: repo}
}

// Handle executes the like status query
func (h *GetLikeStatusHandler) Handle(ctx context.Context, q GetLikeStatusQuery) (*LikeStatus, error) {
	like, err := h.repo.FindByArticleAndUser(ctx, q.ArticleID, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get like status: %w", err)
	}

	return &LikeStatus{
		ArticleID: q.ArticleID,
		UserID:    q.UserID,
		Liked:     like != nil,
		Like:      like,
	}, nil
}
