package domain

import (
	"context"
	"time"
)

// Like records one user endorsing one article. At most one Like exists per
// (article, user) pair; the pair is covered by a unique index.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ArticleID uint      `json:"article_id" gorm:"not null;uniqueIndex:idx_likes_article_user,priority:1"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_article_user,priority:2;index"`
	CreatedAt time.Time `json:"created_at"`

	// Article and User are owned by other services and only populated on create
	Article *Article `json:"article,omitempty" gorm:"-"`
	User    *User    `json:"user,omitempty" gorm:"-"`
}

// TableName specifies the table name
func (Like) TableName() string {
	return "likes"
}

// Article is the view of an article returned by the article service
type Article struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// User is the view of a user returned by the user service
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// LikeRepository defines the contract for like data access.
// Lookups report an absent record as (nil, nil).
type LikeRepository interface {
	FindByArticleAndUser(ctx context.Context, articleID, userID uint) (*Like, error)
	FindByArticle(ctx context.Context, articleID uint, limit, offset int) ([]Like, error)
	CountByArticle(ctx context.Context, articleID uint) (int64, error)
	Create(ctx context.Context, like *Like) error
	Delete(ctx context.Context, like *Like) error
}

// ArticleFinder resolves articles by ID. Unknown IDs yield (nil, nil).
type ArticleFinder interface {
	FindArticle(ctx context.Context, id uint) (*Article, error)
}

// UserFinder resolves users by ID. Unknown IDs yield (nil, nil).
type UserFinder interface {
	FindUser(ctx context.Context, id uint) (*User, error)
}
