package smartcache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wmarczak/reporting-api/infrastructure/repository/mocks"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/pkg/memcache"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		SmartCache: config.SmartCache{
			TTLHours:            3,
			FetchTimeoutSeconds: 5,
		},
	}
}

func stringPtr(s string) *string {
	return &s
}

func testClient() *domain.Client {
	return &domain.Client{
		ID:            "client-1",
		Name:          "Cliente Teste",
		MetaAccountID: stringPtr("act_123"),
		Status:        domain.ClientStatusActive,
	}
}

func testPayload(spend float64) *domain.PeriodPayload {
	payload := &domain.PeriodPayload{
		Totals: domain.PlatformTotals{
			Spend:       spend,
			Impressions: 1000,
			Clicks:      50,
		},
		FetchedAt: testNow,
	}
	payload.Totals.RecomputeDerived()
	return payload
}

type fetcherStub struct {
	platform  domain.Platform
	campaigns []domain.UnifiedCampaign
	err       error
	mu        sync.Mutex
	calls     int
}

func (f *fetcherStub) Platform() domain.Platform { return f.platform }

func (f *fetcherStub) FetchCampaignInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]domain.UnifiedCampaign, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return f.campaigns, nil
}

func (f *fetcherStub) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestService(t *testing.T, clientRepo *mocks.MockClientRepository, cacheRepo *mocks.MockCurrentPeriodCacheRepository, fetcher PlatformFetcher) *Service {
	t.Helper()

	memCache := memcache.New(100, 10, time.Hour)
	t.Cleanup(memCache.Stop)

	fetchers := map[domain.Platform]PlatformFetcher{}
	if fetcher != nil {
		fetchers[fetcher.Platform()] = fetcher
	}

	return &Service{
		cfg:        testConfig(),
		clientRepo: clientRepo,
		cacheRepo:  cacheRepo,
		memCache:   memCache,
		fetchers:   fetchers,
		nowFunc:    func() time.Time { return testNow },
		inflight:   make(map[string]*inflightCall),
	}
}

func TestService_GetMonthData_FreshCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{platform: domain.PlatformMeta}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	// Linha do período corrente atualizada há 1 hora, dentro do TTL de 3
	entry := &domain.CurrentPeriodCacheEntry{
		ID:          1,
		ClientID:    "client-1",
		Platform:    domain.PlatformMeta,
		PeriodID:    "2024-10",
		Payload:     testPayload(500),
		LastUpdated: testNow.Add(-time.Hour),
	}

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(entry, nil)

	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.FromCache)
	assert.Equal(t, domain.DataSourceSmartCacheFresh, result.Source)
	assert.Equal(t, 500.0, result.Data.Totals.Spend)
	assert.Equal(t, 0, fetcher.callCount())

	// A segunda consulta sai do cache em memória sem tocar o banco
	result, err = service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)
	assert.Equal(t, domain.DataSourceMemoryCache, result.Source)
}

func TestService_GetMonthData_StaleCacheWithLiveFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{
		platform: domain.PlatformMeta,
		campaigns: []domain.UnifiedCampaign{
			{CampaignID: "c1", Platform: domain.PlatformMeta, Spend: 900, Impressions: 2000, Clicks: 80},
		},
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	// Linha do período corrente atualizada há 5 horas, acima do TTL de 3
	entry := &domain.CurrentPeriodCacheEntry{
		ID:          1,
		ClientID:    "client-1",
		Platform:    domain.PlatformMeta,
		PeriodID:    "2024-10",
		Payload:     testPayload(500),
		LastUpdated: testNow.Add(-5 * time.Hour),
	}

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(entry, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil)

	cacheRepo.EXPECT().
		Upsert(domain.GranularityMonth, gomock.Any()).
		DoAndReturn(func(_ domain.Granularity, saved *domain.CurrentPeriodCacheEntry) error {
			assert.Equal(t, "2024-10", saved.PeriodID)
			assert.Equal(t, 900.0, saved.Payload.Totals.Spend)
			return nil
		})

	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.False(t, result.FromCache)
	assert.Equal(t, domain.DataSourceLiveAPI, result.Source)
	assert.Equal(t, 900.0, result.Data.Totals.Spend)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestService_GetMonthData_StaleCacheFallbackOnFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{
		platform: domain.PlatformMeta,
		err:      fmt.Errorf("rate limit da Graph API"),
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	entry := &domain.CurrentPeriodCacheEntry{
		ID:          1,
		ClientID:    "client-1",
		Platform:    domain.PlatformMeta,
		PeriodID:    "2024-10",
		Payload:     testPayload(500),
		LastUpdated: testNow.Add(-5 * time.Hour),
	}

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(entry, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil)

	// O fetch ao vivo falhou: serve os dados velhos marcados como desatualizados
	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.FromCache)
	assert.Equal(t, domain.DataSourceSmartCacheStale, result.Source)
	assert.Equal(t, 500.0, result.Data.Totals.Spend)
}

func TestService_GetMonthData_WrongPeriodTreatedAsAbsent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{
		platform: domain.PlatformMeta,
		campaigns: []domain.UnifiedCampaign{
			{CampaignID: "c1", Platform: domain.PlatformMeta, Spend: 100},
		},
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	// Linha de setembro ainda não arquivada: jamais pode ser servida em outubro
	entry := &domain.CurrentPeriodCacheEntry{
		ID:          1,
		ClientID:    "client-1",
		Platform:    domain.PlatformMeta,
		PeriodID:    "2024-09",
		Payload:     testPayload(9999),
		LastUpdated: testNow.Add(-time.Hour),
	}

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(entry, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil)
	cacheRepo.EXPECT().Upsert(domain.GranularityMonth, gomock.Any()).Return(nil)

	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)

	assert.Equal(t, domain.DataSourceLiveAPI, result.Source)
	assert.Equal(t, 100.0, result.Data.Totals.Spend)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestService_GetMonthData_AbsentFetchesLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{
		platform: domain.PlatformMeta,
		campaigns: []domain.UnifiedCampaign{
			{CampaignID: "c1", Platform: domain.PlatformMeta, Spend: 250, Impressions: 500, Clicks: 20},
		},
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(nil, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil)
	cacheRepo.EXPECT().Upsert(domain.GranularityMonth, gomock.Any()).Return(nil)

	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, domain.DataSourceLiveAPI, result.Source)
	assert.Equal(t, 250.0, result.Data.Totals.Spend)
}

func TestService_GetMonthData_AbsentFetchFailureIsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{
		platform: domain.PlatformMeta,
		err:      fmt.Errorf("rate limit da Graph API"),
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(nil, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil)

	// Sem cache para cair: a falha do fetch é devolvida ao chamador
	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
}

func TestService_GetMonthData_ForceBypassesCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{
		platform: domain.PlatformMeta,
		campaigns: []domain.UnifiedCampaign{
			{CampaignID: "c1", Platform: domain.PlatformMeta, Spend: 700},
		},
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	// Linha fresca que seria servida sem o force
	entry := &domain.CurrentPeriodCacheEntry{
		ID:          1,
		ClientID:    "client-1",
		Platform:    domain.PlatformMeta,
		PeriodID:    "2024-10",
		Payload:     testPayload(500),
		LastUpdated: testNow.Add(-time.Minute),
	}

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(entry, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil)
	cacheRepo.EXPECT().Upsert(domain.GranularityMonth, gomock.Any()).Return(nil)

	result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, true)
	require.NoError(t, err)

	assert.Equal(t, domain.DataSourceLiveAPI, result.Source)
	assert.Equal(t, 700.0, result.Data.Totals.Spend)
	assert.Equal(t, 1, fetcher.callCount())
}

func TestService_GetWeekData_UsesWeekGranularity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
	fetcher := &fetcherStub{platform: domain.PlatformMeta}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	// 15 de outubro de 2024 é terça-feira da semana ISO 42
	entry := &domain.CurrentPeriodCacheEntry{
		ID:          1,
		ClientID:    "client-1",
		Platform:    domain.PlatformMeta,
		PeriodID:    "2024-W42",
		Payload:     testPayload(300),
		LastUpdated: testNow.Add(-time.Hour),
	}

	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityWeek, "client-1", domain.PlatformMeta).
		Return(entry, nil)

	result, err := service.GetWeekData(context.Background(), "client-1", domain.PlatformMeta, false)
	require.NoError(t, err)

	assert.Equal(t, domain.DataSourceSmartCacheFresh, result.Source)
	assert.Equal(t, 300.0, result.Data.Totals.Spend)
}

func TestService_GetPeriodData_InflightDeduplication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)

	release := make(chan struct{})
	fetcher := &blockingFetcher{
		fetcherStub: fetcherStub{
			platform: domain.PlatformMeta,
			campaigns: []domain.UnifiedCampaign{
				{CampaignID: "c1", Platform: domain.PlatformMeta, Spend: 100},
			},
		},
		release: release,
		started: make(chan struct{}),
	}

	service := newTestService(t, clientRepo, cacheRepo, fetcher)

	// Uma única resolução acontece; as demais consultas esperam por ela
	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(nil, nil).
		Times(1)

	clientRepo.EXPECT().GetByID("client-1").Return(testClient(), nil).Times(1)
	cacheRepo.EXPECT().Upsert(domain.GranularityMonth, gomock.Any()).Return(nil).Times(1)

	const concurrent = 5
	var wg sync.WaitGroup
	results := make(chan *CacheResult, concurrent)

	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := service.GetMonthData(context.Background(), "client-1", domain.PlatformMeta, false)
			assert.NoError(t, err)
			results <- result
		}()
	}

	// Espera as goroutines entrarem em voo antes de liberar o fetch
	fetcher.waitForFirstCall()
	time.Sleep(50 * time.Millisecond)
	close(release)

	wg.Wait()
	close(results)

	for result := range results {
		require.NotNil(t, result)
		assert.True(t, result.Success)
		assert.Equal(t, 100.0, result.Data.Totals.Spend)
	}

	assert.Equal(t, 1, fetcher.callCount())
}

type blockingFetcher struct {
	fetcherStub
	release   chan struct{}
	firstCall sync.Once
	started   chan struct{}
}

func (f *blockingFetcher) FetchCampaignInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]domain.UnifiedCampaign, error) {
	f.firstCall.Do(func() {
		if f.started != nil {
			close(f.started)
		}
	})
	<-f.release
	return f.fetcherStub.FetchCampaignInsights(ctx, accountID, startDate, endDate)
}

func (f *blockingFetcher) waitForFirstCall() {
	if f.started != nil {
		<-f.started
	}
}

func TestService_GetUnifiedData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)

	metaFetcher := &fetcherStub{platform: domain.PlatformMeta}
	googleFetcher := &fetcherStub{platform: domain.PlatformGoogle}

	memCache := memcache.New(100, 10, time.Hour)
	t.Cleanup(memCache.Stop)

	service := &Service{
		cfg:        testConfig(),
		clientRepo: clientRepo,
		cacheRepo:  cacheRepo,
		memCache:   memCache,
		fetchers: map[domain.Platform]PlatformFetcher{
			domain.PlatformMeta:   metaFetcher,
			domain.PlatformGoogle: googleFetcher,
		},
		nowFunc:  func() time.Time { return testNow },
		inflight: make(map[string]*inflightCall),
	}

	client := testClient()
	client.GoogleAccountID = stringPtr("987-654-3210")

	metaEntry := &domain.CurrentPeriodCacheEntry{
		ID: 1, ClientID: "client-1", Platform: domain.PlatformMeta,
		PeriodID: "2024-10", Payload: testPayload(500), LastUpdated: testNow.Add(-time.Hour),
	}
	googleEntry := &domain.CurrentPeriodCacheEntry{
		ID: 2, ClientID: "client-1", Platform: domain.PlatformGoogle,
		PeriodID: "2024-10", Payload: testPayload(300), LastUpdated: testNow.Add(-time.Hour),
	}

	clientRepo.EXPECT().GetByID("client-1").Return(client, nil)
	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(metaEntry, nil)
	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformGoogle).
		Return(googleEntry, nil)

	result, err := service.GetUnifiedData(context.Background(), "client-1", domain.GranularityMonth, false)
	require.NoError(t, err)

	assert.False(t, result.Partial)
	assert.Equal(t, 800.0, result.Totals.Spend)
	assert.Equal(t, 2000, result.Totals.Impressions)
	assert.Equal(t, domain.DataSourceSmartCacheFresh, result.Sources[domain.PlatformMeta])
	assert.Equal(t, domain.DataSourceSmartCacheFresh, result.Sources[domain.PlatformGoogle])
}

func TestService_GetUnifiedData_PartialOnPlatformFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)

	metaFetcher := &fetcherStub{platform: domain.PlatformMeta}
	googleFetcher := &fetcherStub{platform: domain.PlatformGoogle, err: fmt.Errorf("quota excedida")}

	memCache := memcache.New(100, 10, time.Hour)
	t.Cleanup(memCache.Stop)

	service := &Service{
		cfg:        testConfig(),
		clientRepo: clientRepo,
		cacheRepo:  cacheRepo,
		memCache:   memCache,
		fetchers: map[domain.Platform]PlatformFetcher{
			domain.PlatformMeta:   metaFetcher,
			domain.PlatformGoogle: googleFetcher,
		},
		nowFunc:  func() time.Time { return testNow },
		inflight: make(map[string]*inflightCall),
	}

	client := testClient()
	client.GoogleAccountID = stringPtr("987-654-3210")

	metaEntry := &domain.CurrentPeriodCacheEntry{
		ID: 1, ClientID: "client-1", Platform: domain.PlatformMeta,
		PeriodID: "2024-10", Payload: testPayload(500), LastUpdated: testNow.Add(-time.Hour),
	}

	clientRepo.EXPECT().GetByID("client-1").Return(client, nil).AnyTimes()
	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformMeta).
		Return(metaEntry, nil)
	cacheRepo.EXPECT().
		GetByClientAndPlatform(domain.GranularityMonth, "client-1", domain.PlatformGoogle).
		Return(nil, nil)

	result, err := service.GetUnifiedData(context.Background(), "client-1", domain.GranularityMonth, false)
	require.NoError(t, err)

	// Só o Meta contribuiu: resultado parcial com a falha sinalizada
	assert.True(t, result.Partial)
	assert.Equal(t, 500.0, result.Totals.Spend)
	assert.Equal(t, "unavailable", result.Sources[domain.PlatformGoogle])
}

func TestService_GetUnifiedData_ClientWithoutAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)

	service := newTestService(t, clientRepo, cacheRepo, nil)

	clientRepo.EXPECT().GetByID("client-1").Return(&domain.Client{ID: "client-1"}, nil)

	_, err := service.GetUnifiedData(context.Background(), "client-1", domain.GranularityMonth, false)
	assert.Error(t, err)
}

func TestService_InvalidateClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	clientRepo := mocks.NewMockClientRepository(ctrl)
	cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)

	service := newTestService(t, clientRepo, cacheRepo, nil)

	service.memCache.Set(cacheKey(domain.GranularityMonth, "client-1", domain.PlatformMeta), testPayload(100), time.Minute)
	service.memCache.Set(cacheKey(domain.GranularityWeek, "client-1", domain.PlatformMeta), testPayload(100), time.Minute)
	service.memCache.Set(cacheKey(domain.GranularityMonth, "client-2", domain.PlatformMeta), testPayload(100), time.Minute)

	service.InvalidateClient("client-1")

	assert.Equal(t, 1, service.memCache.Len())

	_, ok := service.memCache.Get(cacheKey(domain.GranularityMonth, "client-2", domain.PlatformMeta))
	assert.True(t, ok)
}
