package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tair/article-likes/internal/like/domain"
	"github.com/tair/article-likes/pkg/logger"
)

// ArticleServiceClient looks articles up in the article service
type ArticleServiceClient struct {
	svc *serviceClient
}

// NewArticleServiceClient creates a client for the article service at baseURL.
// A nil transport uses http.DefaultTransport.
func NewArticleServiceClient(baseURL string, transport http.RoundTripper) *ArticleServiceClient {
	logger.Logger.Info().
		Str("url", baseURL).
		Msg("Article service client configured")

	return &ArticleServiceClient{svc: newServiceClient("article-service", baseURL, transport)}
}

// FindArticle implements domain.ArticleFinder
func (c *ArticleServiceClient) FindArticle(ctx context.Context, id uint) (*domain.Article, error) {
	var article domain.Article
	found, err := c.svc.get(ctx, fmt.Sprintf("/api/articles/%d", id), &article)
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &article, nil
}

// Breaker exposes the client's circuit breaker for health reporting
func (c *ArticleServiceClient) Breaker() *CircuitBreaker {
	return c.svc.breaker
}
