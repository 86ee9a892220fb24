package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/savedsphere/sphered/internal/logger"
	"github.com/savedsphere/sphered/internal/mirror"
	"github.com/savedsphere/sphered/internal/repository"
	"github.com/savedsphere/sphered/internal/store"
)

type Deps struct {
	Logger      logger.Logger
	StartTime   time.Time
	Version     string
	Commit      string
	BuildDate   string
	GoVersion   string
	TimeNow     func() time.Time       // for testing, defaults to time.Now
	Repo        *repository.Repository // storage-backed collection operations
	Hub         *mirror.Hub            // in-memory mirrors with optimistic updates
	Store       store.Store            // raw key-value access (infra checks)
	RedisClient *redis.Client          // nil when running on the memory store
	CORSOrigins []string               // allowed CORS origins
}
