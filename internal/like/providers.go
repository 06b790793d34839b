// Package like assembles the likes service from its parts.
package like

import (
	"net/http"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/article-likes/internal/config"
	"github.com/tair/article-likes/internal/like/client"
	httpDelivery "github.com/tair/article-likes/internal/like/delivery/http"
	"github.com/tair/article-likes/internal/like/domain"
	"github.com/tair/article-likes/internal/like/repository"
	"github.com/tair/article-likes/internal/like/usecase/command"
	"github.com/tair/article-likes/internal/like/usecase/query"
)

// Service is everything cmd/likes needs to serve requests
type Service struct {
	Handler  *httpDelivery.LikeHandler
	Breakers []*client.CircuitBreaker
}

// ProvideLikeRepository provides the traced gorm repository
func ProvideLikeRepository(db *gorm.DB, tp trace.TracerProvider) domain.LikeRepository {
	return repository.NewTracingLikeRepository(repository.NewGormLikeRepository(db), tp)
}

// Remote lookup providers
func ProvideArticleServiceClient(cfg *config.Config) *client.ArticleServiceClient {
	return client.NewArticleServiceClient(cfg.ArticleServiceURL, http.DefaultTransport)
}

func ProvideUserServiceClient(cfg *config.Config) *client.UserServiceClient {
	return client.NewUserServiceClient(cfg.UserServiceURL, http.DefaultTransport)
}

func ProvideArticleFinder(c *client.ArticleServiceClient, rdb *redis.Client, cfg *config.Config) domain.ArticleFinder {
	return client.NewCachedArticleFinder(c, rdb, cfg.LookupCacheTTL)
}

func ProvideUserFinder(c *client.UserServiceClient, rdb *redis.Client, cfg *config.Config) domain.UserFinder {
	return client.NewCachedUserFinder(c, rdb, cfg.LookupCacheTTL)
}

// Command Handlers Providers
func ProvideCreateLikeHandler(repo domain.LikeRepository, articles domain.ArticleFinder, users domain.UserFinder) *command.CreateLikeHandler {
	return command.NewCreateLikeHandler(repo, articles, users)
}

func ProvideRemoveLikeHandler(repo domain.LikeRepository) *command.RemoveLikeHandler {
	return command.NewRemoveLikeHandler(repo)
}

// Query Handlers Providers
func ProvideListLikesHandler(repo domain.LikeRepository) *query.ListLikesHandler {
	return query.NewListLikesHandler(repo)
}

func ProvideCountLikesHandler(repo domain.LikeRepository) *query.CountLikesHandler {
	return query.NewCountLikesHandler(repo)
}

func ProvideGetLikeStatusHandler(repo domain.LikeRepository) *query.GetLikeStatusHandler {
	return query.NewGetLikeStatusHandler(repo)
}

// ProvideHandlerConfig extracts the HTTP settings from the service config
func ProvideHandlerConfig(cfg *config.Config) httpDelivery.HandlerConfig {
	return httpDelivery.HandlerConfig{
		JWTSecret:   cfg.JWTSecret,
		MaxPageSize: cfg.MaxPageSize,
	}
}

// ProvideService bundles the handler with the breakers reported on /health
func ProvideService(
	handler *httpDelivery.LikeHandler,
	articles *client.ArticleServiceClient,
	users *client.UserServiceClient,
) *Service {
	return &Service{
		Handler:  handler,
		Breakers: []*client.CircuitBreaker{articles.Breaker(), users.Breaker()},
	}
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideLikeRepository,
)

var ClientSet = wire.NewSet(
	ProvideArticleServiceClient,
	ProvideUserServiceClient,
	ProvideArticleFinder,
	ProvideUserFinder,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateLikeHandler,
	ProvideRemoveLikeHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListLikesHandler,
	ProvideCountLikesHandler,
	ProvideGetLikeStatusHandler,
)

var ServiceSet = wire.NewSet(
	RepositorySet,
	ClientSet,
	CommandHandlerSet,
	QueryHandlerSet,
	ProvideHandlerConfig,
	httpDelivery.NewLikeHandlerWithDI,
	ProvideService,
)
