package command

import (
	"context"
	"fmt"

	"github.com/tair/article-likes/internal/like/domain"
)

// RemoveLikeCommand represents the command to withdraw a like
type RemoveLikeCommand struct {
	ArticleID uint
	UserID    uint
}

// RemoveLikeHandler handles like removal command
type RemoveLikeHandler struct {
	repo domain.LikeRepository
}

// NewRemoveLikeHandler creates a new remove like handler
func NewRemoveLikeHandler(repo domain.LikeRepository) *RemoveLikeHandler {
	return &RemoveLikeHandler{repo: repo}
}

// Handle executes the remove like command. Only the like itself has to
// exist; the article and user are not looked up.
func (h *RemoveLikeHandler) Handle(ctx context.Context, cmd RemoveLikeCommand) error {
	like, err := h.repo.FindByArticleAndUser(ctx, cmd.ArticleID, cmd.UserID)
	if err != nil {
		return fmt.Errorf("failed to find like: %w", err)
	}
	if like == nil {
		return domain.NewNotFoundError(domain.MsgLikeNotFound)
	}

	return h.repo.Delete(ctx, like)
}
