package service

import (
	"context"
	"time"

	"github.com/sumonst21/opencollective-images/internal/constants"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/internal/service/cache"
	"go.uber.org/zap"
)

// MemberSource resolves members, stats, and collectives from upstream.
// Implemented by Fetcher; faked in tests.
type MemberSource interface {
	Members(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error)
	MembersStats(ctx context.Context, req domain.MembersRequest) (*domain.MembersStats, error)
	Collective(ctx context.Context, collectiveSlug string) (*domain.Collective, error)
}

// CacheStore is the cache collaborator contract: get leaves dest untouched
// on a miss, set stores with a TTL.
type CacheStore interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Resolver wraps upstream resolution in a cache-aside layer. Hits are
// returned verbatim; misses fetch, store with a fixed TTL, and return.
// Failed resolutions are never cached, and concurrent misses for the same
// key may each hit upstream once (no single flight).
type Resolver struct {
	source MemberSource
	cache  CacheStore
	logger *zap.Logger
}

func NewResolver(source MemberSource, cacheStore CacheStore, logger *zap.Logger) *Resolver {
	return &Resolver{
		source: source,
		cache:  cacheStore,
		logger: logger,
	}
}

// Members resolves the canonical member list for a request, serving from
// cache within the TTL window.
func (r *Resolver) Members(ctx context.Context, req domain.MembersRequest) ([]domain.Member, error) {
	key := cache.BuildKey(constants.CacheNamespace.Members, req.CacheParams())

	var cached []domain.Member
	if err := r.cache.Get(ctx, key, &cached); err != nil {
		// A broken cache read degrades to a miss.
		r.logger.Warn("Cache read failed, resolving upstream", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	members, err := r.source.Members(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, members, constants.CacheTTL.Members); err != nil {
		r.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return members, nil
}

// MembersStats resolves the aggregate count for a request, cached under its
// own namespace.
func (r *Resolver) MembersStats(ctx context.Context, req domain.MembersRequest) (*domain.MembersStats, error) {
	key := cache.BuildKey(constants.CacheNamespace.MembersStats, req.CacheParams())

	var cached *domain.MembersStats
	if err := r.cache.Get(ctx, key, &cached); err != nil {
		r.logger.Warn("Cache read failed, resolving upstream", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	stats, err := r.source.MembersStats(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, stats, constants.CacheTTL.MembersStats); err != nil {
		r.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return stats, nil
}

// Collective resolves a collective profile, keyed by slug alone.
func (r *Resolver) Collective(ctx context.Context, collectiveSlug string) (*domain.Collective, error) {
	key := cache.SlugKey(constants.CacheNamespace.Collective, collectiveSlug)

	var cached *domain.Collective
	if err := r.cache.Get(ctx, key, &cached); err != nil {
		r.logger.Warn("Cache read failed, resolving upstream", zap.String("key", key), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	collective, err := r.source.Collective(ctx, collectiveSlug)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, collective, constants.CacheTTL.Collective); err != nil {
		r.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return collective, nil
}
