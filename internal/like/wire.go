//go:build wireinject
// +build wireinject

package like

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/article-likes/internal/config"
)

// InitializeService wires the HTTP handler and its collaborators
func InitializeService(
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	tp trace.TracerProvider,
	reg prometheus.Registerer,
) (*Service, error) {
	wire.Build(ServiceSet)
	return nil, nil
}
