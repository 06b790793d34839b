package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/article-likes/internal/like/domain"
)

// GormLikeRepository implements domain.LikeRepository using GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GORM like repository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// AutoMigrate creates the likes table and its (article_id, user_id) unique index
func (r *GormLikeRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Like{})
}

// FindByArticleAndUser returns the like for the pair, or nil when there is none
func (r *GormLikeRepository) FindByArticleAndUser(ctx context.Context, articleID, userID uint) (*domain.Like, error) {
	var like domain.Like
	err := r.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ?", articleID, userID).
		Take(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find like: %w", err)
	}
	return &like, nil
}

// FindByArticle returns one page of likes for an article in insertion order
func (r *GormLikeRepository) FindByArticle(ctx context.Context, articleID uint, limit, offset int) ([]domain.Like, error) {
	var likes []domain.Like
	query := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&likes).Error; err != nil {
		return nil, fmt.Errorf("failed to find likes: %w", err)
	}
	return likes, nil
}

// CountByArticle returns the number of likes for an article
func (r *GormLikeRepository) CountByArticle(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("article_id = ?", articleID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// Create inserts a like. A unique-index violation means another request
// stored the same pair first and is reported as a conflict.
func (r *GormLikeRepository) Create(ctx context.Context, like *domain.Like) error {
	err := r.db.WithContext(ctx).Create(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError(domain.MsgAlreadyLiked)
		}
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// Delete hard deletes a like by its ID
func (r *GormLikeRepository) Delete(ctx context.Context, like *domain.Like) error {
	result := r.db.WithContext(ctx).Delete(&domain.Like{}, like.ID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError(domain.MsgLikeNotFound)
	}
	return nil
}
