package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"frt-offers/domain"
	"frt-offers/repository"
)

type MockCache struct {
	mu       sync.Mutex
	Data     map[string]string
	GetCalls int
	SetCalls int
	FailSet  bool
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.FailSet {
		return errors.New("cache unavailable")
	}
	m.Data[key] = value
	return nil
}

func newTestService(t *testing.T, cache repository.CacheRepository) *OfferService {
	t.Helper()
	store := repository.NewStaticStore(loadCatalog(t))
	return NewOfferService(store, cache, DefaultCacheTTL, zaptest.NewLogger(t))
}

func TestGenerate_RendersOffer(t *testing.T) {
	svc := newTestService(t, nil)

	res, err := svc.Generate(context.Background(), reniAlexandria())

	require.NoError(t, err)
	assert.Equal(t, "Reni → Alexandria", res.Summary.Route)
	assert.Equal(t, "990000", res.Summary.TotalFreight.String())
	assert.Equal(t, domain.PortTypeDanube, res.Summary.PortType)
	assert.Contains(t, res.FirmOfferText, "HOLIDAYS AS PER UKRAINE 2025/2026 CALENDAR")
}

func TestGenerate_RejectsInvalidRequest(t *testing.T) {
	cache := NewMockCache()
	svc := newTestService(t, cache)
	req := reniAlexandria()
	req.LoadPort = "Atlantis"

	res, err := svc.Generate(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrUnknownPort)
	assert.Empty(t, res.FirmOfferText)
	assert.Equal(t, 0, cache.SetCalls, "rejected requests must not be cached")
}

func TestGenerate_CachesResult(t *testing.T) {
	cache := NewMockCache()
	svc := newTestService(t, cache)

	first, err := svc.Generate(context.Background(), reniAlexandria())
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), reniAlexandria())
	require.NoError(t, err)

	assert.Equal(t, 1, cache.SetCalls)
	assert.Equal(t, 2, cache.GetCalls)
	assert.Equal(t, first.FirmOfferText, second.FirmOfferText)
	assert.True(t, first.Summary.TotalFreight.Equal(second.Summary.TotalFreight))
}

func TestGenerate_ServesCachedPayload(t *testing.T) {
	cache := NewMockCache()
	svc := newTestService(t, cache)
	req := reniAlexandria()

	blob, err := json.Marshal(domain.OfferResult{FirmOfferText: "CACHED"})
	require.NoError(t, err)
	cache.Data[cacheKey(svc.CatalogVersion(), req)] = string(blob)

	res, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "CACHED", res.FirmOfferText)
}

func TestGenerate_IgnoresUnreadableCacheEntry(t *testing.T) {
	cache := NewMockCache()
	svc := newTestService(t, cache)
	req := reniAlexandria()
	cache.Data[cacheKey(svc.CatalogVersion(), req)] = "{not json"

	res, err := svc.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Contains(t, res.FirmOfferText, "FIRM OFFER")
}

func TestGenerate_CacheFailureIsNotFatal(t *testing.T) {
	cache := NewMockCache()
	cache.FailSet = true
	svc := newTestService(t, cache)

	_, err := svc.Generate(context.Background(), reniAlexandria())

	assert.NoError(t, err)
	assert.Equal(t, 1, cache.SetCalls)
}

func TestCacheKey_DependsOnVersionAndRequest(t *testing.T) {
	req := reniAlexandria()
	base := cacheKey("v1", req)

	assert.Equal(t, base, cacheKey("v1", req))
	assert.NotEqual(t, base, cacheKey("v2", req))

	req.FreightRate = 18.5
	assert.NotEqual(t, base, cacheKey("v1", req))
}

func TestListCharterers_ResolvesPrimary(t *testing.T) {
	svc := newTestService(t, nil)

	infos := svc.ListCharterers(context.Background())

	require.Len(t, infos, 2)
	byID := map[string]domain.ChartererInfo{}
	for _, info := range infos {
		byID[info.ChartererID] = info
	}
	assert.Equal(t, "Delta Grain Trading SA", byID["CHTR-001"].CompanyName)
	assert.True(t, byID["CHTR-001"].OrSubDefault)
	assert.Equal(t, "Nile Agro Imports SAE", byID["CHTR-002"].CompanyName)
	assert.False(t, byID["CHTR-002"].OrSubDefault)
}

func TestListCatalogs(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	assert.Len(t, svc.ListLoadPorts(ctx), 7)
	assert.Len(t, svc.ListDischargePorts(ctx), 6)
	assert.Len(t, svc.ListCargoes(ctx), 7)
	assert.NotEmpty(t, svc.CatalogVersion())
}
