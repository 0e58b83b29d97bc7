package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"github.com/sumonst21/opencollective-images/pkg/errors"
	"go.uber.org/zap"
)

type fakeCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeCache) Get(_ context.Context, key string, dest any) error {
	if f.getErr != nil {
		return f.getErr
	}
	value, ok := f.entries[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(value, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = data
	f.ttls[key] = ttl
	return nil
}

type fakeSource struct {
	members      []domain.Member
	stats        *domain.MembersStats
	collective   *domain.Collective
	err          error
	memberCalls  int
	statsCalls   int
	collectCalls int
}

func (f *fakeSource) Members(context.Context, domain.MembersRequest) ([]domain.Member, error) {
	f.memberCalls++
	return f.members, f.err
}

func (f *fakeSource) MembersStats(context.Context, domain.MembersRequest) (*domain.MembersStats, error) {
	f.statsCalls++
	return f.stats, f.err
}

func (f *fakeSource) Collective(context.Context, string) (*domain.Collective, error) {
	f.collectCalls++
	return f.collective, f.err
}

func TestResolverMembersCacheAside(t *testing.T) {
	source := &fakeSource{members: []domain.Member{{Slug: "acme", Type: domain.MemberTypeOrganization}}}
	store := newFakeCache()
	resolver := NewResolver(source, store, zap.NewNop())

	req := domain.NewMembersRequest("webpack", "sponsors", "", true)

	first, err := resolver.Members(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, source.memberCalls)

	second, err := resolver.Members(context.Background(), req)
	require.NoError(t, err)

	// second call served from cache, structurally identical
	assert.Equal(t, 1, source.memberCalls)
	assert.Equal(t, first, second)

	for _, ttl := range store.ttls {
		assert.Equal(t, 10*time.Minute, ttl)
	}
}

func TestResolverMembersEmptyListIsCached(t *testing.T) {
	source := &fakeSource{members: []domain.Member{}}
	store := newFakeCache()
	resolver := NewResolver(source, store, zap.NewNop())

	req := domain.NewMembersRequest("webpack", "backers", "", false)

	_, err := resolver.Members(context.Background(), req)
	require.NoError(t, err)
	_, err = resolver.Members(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, source.memberCalls, "empty lists are valid cacheable results")
}

func TestResolverFailureIsNotCached(t *testing.T) {
	source := &fakeSource{err: errors.NewAPIError("boom", 502, nil)}
	store := newFakeCache()
	resolver := NewResolver(source, store, zap.NewNop())

	req := domain.NewMembersRequest("webpack", "backers", "", false)

	_, err := resolver.Members(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, store.entries)

	// next call retries resolution from scratch
	source.err = nil
	source.members = []domain.Member{{Slug: "dana"}}
	members, err := resolver.Members(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, 2, source.memberCalls)
}

func TestResolverCacheReadErrorFallsThrough(t *testing.T) {
	source := &fakeSource{members: []domain.Member{{Slug: "acme"}}}
	store := newFakeCache()
	store.getErr = stderrors.New("redis down")
	resolver := NewResolver(source, store, zap.NewNop())

	req := domain.NewMembersRequest("webpack", "backers", "", false)

	members, err := resolver.Members(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, 1, source.memberCalls)
}

func TestResolverRequestsGetDistinctKeys(t *testing.T) {
	source := &fakeSource{members: []domain.Member{}}
	store := newFakeCache()
	resolver := NewResolver(source, store, zap.NewNop())

	_, err := resolver.Members(context.Background(), domain.NewMembersRequest("webpack", "backers", "", false))
	require.NoError(t, err)
	_, err = resolver.Members(context.Background(), domain.NewMembersRequest("webpack", "backers", "", true))
	require.NoError(t, err)

	assert.Len(t, store.entries, 2)
	assert.Equal(t, 2, source.memberCalls)
}

func TestResolverStatsIndependentNamespace(t *testing.T) {
	source := &fakeSource{
		members: []domain.Member{{Slug: "acme"}},
		stats:   &domain.MembersStats{Name: "sponsors", Count: 8},
	}
	store := newFakeCache()
	resolver := NewResolver(source, store, zap.NewNop())

	req := domain.NewMembersRequest("webpack", "sponsors", "", true)

	_, err := resolver.Members(context.Background(), req)
	require.NoError(t, err)
	stats, err := resolver.MembersStats(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Count)

	// same request params, two cache entries under different namespaces
	assert.Len(t, store.entries, 2)

	cachedStats, err := resolver.MembersStats(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, source.statsCalls)
	assert.Equal(t, stats, cachedStats)
}

func TestResolverCollectiveKeyedBySlug(t *testing.T) {
	source := &fakeSource{collective: &domain.Collective{Name: "webpack", Type: "COLLECTIVE"}}
	store := newFakeCache()
	resolver := NewResolver(source, store, zap.NewNop())

	first, err := resolver.Collective(context.Background(), "webpack")
	require.NoError(t, err)
	second, err := resolver.Collective(context.Background(), "webpack")
	require.NoError(t, err)

	assert.Equal(t, 1, source.collectCalls)
	assert.Equal(t, first, second)
	assert.Contains(t, store.entries, "collective_webpack")
}
