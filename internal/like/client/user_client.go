package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tair/article-likes/internal/like/domain"
	"github.com/tair/article-likes/pkg/logger"
)

// UserServiceClient looks users up in the user service
type UserServiceClient struct {
	svc *serviceClient
}

// NewUserServiceClient creates a client for the user service at baseURL
func NewUserServiceClient(baseURL string, transport http.RoundTripper) *UserServiceClient {
	logger.Logger.Info().
		Str("url", baseURL).
		Msg("User service client configured")

	return &UserServiceClient{svc: newServiceClient("user-service", baseURL, transport)}
}

// FindUser implements domain.UserFinder
func (c *UserServiceClient) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	found, err := c.svc.get(ctx, fmt.Sprintf("/api/users/%d", id), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// Breaker exposes the client's circuit breaker for health reporting
func (c *UserServiceClient) Breaker() *CircuitBreaker {
	return c.svc.breaker
}
