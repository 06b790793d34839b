package command

import (
	"context"
	"fmt"

	"github.com/tair/article-likes/internal/like/domain"
)

// CreateLikeCommand represents the command to like an article
type CreateLikeCommand struct {
	ArticleID uint
	UserID    uint
}

// CreateLikeHandler handles like creation command
type CreateLikeHandler struct {
	repo     domain.LikeRepository
	articles domain.ArticleFinder
	users    domain.UserFinder
}

// NewCreateLikeHandler creates a new create like handler
func NewCreateLikeHandler(repo domain.LikeRepository, articles domain.ArticleFinder, users domain.UserFinder) *CreateLikeHandler {
	return &CreateLikeHandler{repo: repo, articles: articles, users: users}
}

// Handle executes the create like command. The store is only written after
// the article, the user and the absence of a previous like are confirmed.
func (h *CreateLikeHandler) Handle(ctx context.Context, cmd CreateLikeCommand) (*domain.Like, error) {
	if cmd.ArticleID == 0 {
		return nil, domain.NewValidationError("article_id is required")
	}
	if cmd.UserID == 0 {
		return nil, domain.NewValidationError("user_id is required")
	}

	article, err := h.articles.FindArticle(ctx, cmd.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return nil, domain.NewNotFoundError(domain.MsgArticleNotFound)
	}

	user, err := h.users.FindUser(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(domain.MsgUserNotFound)
	}

	existing, err := h.repo.FindByArticleAndUser(ctx, cmd.ArticleID, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing like: %w", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError(domain.MsgAlreadyLiked)
	}

	like := &domain.Like{
		ArticleID: article.ID,
		UserID:    user.ID,
		Article:   article,
		User:      user,
	}

	// the unique index still rejects a racing duplicate; the repository
	// reports that as the same conflict
	if err := h.repo.Create(ctx, like); err != nil {
		return nil, err
	}

	return like, nil
}
