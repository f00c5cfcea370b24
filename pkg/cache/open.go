package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Options select and configure a backend.
type Options struct {
	Backend string
	Dir     string
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open returns the backend named by opts.Backend. An empty name means
// BackendFile, or BackendNone when Dir is empty too.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "":
		if opts.Dir == "" {
			return NewNullCache(), nil
		}
		return NewFileCache(opts.Dir)
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
