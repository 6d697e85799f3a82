package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	repomocks "github.com/wmarczak/reporting-api/infrastructure/repository/mocks"
	"github.com/wmarczak/reporting-api/internal/domain"
	schedulermocks "github.com/wmarczak/reporting-api/internal/scheduler/mocks"
	"go.uber.org/mock/gomock"
)

func stringPtr(s string) *string {
	return &s
}

func syncTestService(clientRepo *repomocks.MockClientRepository, dailyKpiRepo *repomocks.MockDailyKpiRepository, fetchers ...DailyKpiFetcher) *DailyKpiSyncService {
	byPlatform := make(map[domain.Platform]DailyKpiFetcher, len(fetchers))
	for _, f := range fetchers {
		byPlatform[f.Platform()] = f
	}

	return &DailyKpiSyncService{
		config: DailyKpiSyncConfig{
			LookbackDays:        3,
			RequestDelaySeconds: 0,
			MaxConcurrentJobs:   2,
			SyncEnabled:         true,
		},
		clientRepo:   clientRepo,
		dailyKpiRepo: dailyKpiRepo,
		fetchers:     byPlatform,
	}
}

func kpiEntry(clientID string, platform domain.Platform, date time.Time) *domain.DailyKpiEntry {
	return &domain.DailyKpiEntry{
		ClientID:    clientID,
		Date:        date,
		Platform:    platform,
		Spend:       100,
		Impressions: 1000,
		Clicks:      50,
	}
}

func TestDailyKpiSyncService_syncClientPlatform(t *testing.T) {
	startDate := time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)

	client := &domain.Client{
		ID:            "client-1",
		Name:          "Cliente Teste",
		MetaAccountID: stringPtr("act_123"),
		Status:        domain.ClientStatusActive,
	}

	t.Run("Busca e persiste cada dia retornado pela plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		clientRepo := repomocks.NewMockClientRepository(ctrl)
		dailyKpiRepo := repomocks.NewMockDailyKpiRepository(ctrl)
		fetcher := schedulermocks.NewMockDailyKpiFetcher(ctrl)
		fetcher.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()

		service := syncTestService(clientRepo, dailyKpiRepo, fetcher)

		entries := []*domain.DailyKpiEntry{
			kpiEntry("client-1", domain.PlatformMeta, startDate),
			kpiEntry("client-1", domain.PlatformMeta, startDate.AddDate(0, 0, 1)),
		}

		fetcher.EXPECT().
			FetchDailyKpis(gomock.Any(), "client-1", "act_123", startDate, endDate).
			Return(entries, nil)

		dailyKpiRepo.EXPECT().SaveOrUpdate(entries[0]).Return(nil)
		dailyKpiRepo.EXPECT().SaveOrUpdate(entries[1]).Return(nil)

		err := service.syncClientPlatform(context.Background(), client, domain.PlatformMeta, "act_123", startDate, endDate)
		assert.NoError(t, err)
	})

	t.Run("Falha ao salvar uma linha não aborta as demais", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		clientRepo := repomocks.NewMockClientRepository(ctrl)
		dailyKpiRepo := repomocks.NewMockDailyKpiRepository(ctrl)
		fetcher := schedulermocks.NewMockDailyKpiFetcher(ctrl)
		fetcher.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()

		service := syncTestService(clientRepo, dailyKpiRepo, fetcher)

		entries := []*domain.DailyKpiEntry{
			kpiEntry("client-1", domain.PlatformMeta, startDate),
			kpiEntry("client-1", domain.PlatformMeta, startDate.AddDate(0, 0, 1)),
		}

		fetcher.EXPECT().
			FetchDailyKpis(gomock.Any(), "client-1", "act_123", startDate, endDate).
			Return(entries, nil)

		dailyKpiRepo.EXPECT().SaveOrUpdate(entries[0]).Return(fmt.Errorf("violação de constraint"))
		dailyKpiRepo.EXPECT().SaveOrUpdate(entries[1]).Return(nil)

		err := service.syncClientPlatform(context.Background(), client, domain.PlatformMeta, "act_123", startDate, endDate)
		assert.NoError(t, err)
	})

	t.Run("Plataforma sem fetcher registrado é erro", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		clientRepo := repomocks.NewMockClientRepository(ctrl)
		dailyKpiRepo := repomocks.NewMockDailyKpiRepository(ctrl)

		service := syncTestService(clientRepo, dailyKpiRepo)

		err := service.syncClientPlatform(context.Background(), client, domain.PlatformGoogle, "987", startDate, endDate)
		assert.Error(t, err)
	})

	t.Run("Falha do fetch é devolvida ao chamador", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		clientRepo := repomocks.NewMockClientRepository(ctrl)
		dailyKpiRepo := repomocks.NewMockDailyKpiRepository(ctrl)
		fetcher := schedulermocks.NewMockDailyKpiFetcher(ctrl)
		fetcher.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()

		service := syncTestService(clientRepo, dailyKpiRepo, fetcher)

		fetcher.EXPECT().
			FetchDailyKpis(gomock.Any(), "client-1", "act_123", startDate, endDate).
			Return(nil, fmt.Errorf("rate limit"))

		err := service.syncClientPlatform(context.Background(), client, domain.PlatformMeta, "act_123", startDate, endDate)
		assert.Error(t, err)
	})
}

func TestDailyKpiSyncService_processClients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	startDate := time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC)

	clientRepo := repomocks.NewMockClientRepository(ctrl)
	dailyKpiRepo := repomocks.NewMockDailyKpiRepository(ctrl)

	metaFetcher := schedulermocks.NewMockDailyKpiFetcher(ctrl)
	metaFetcher.EXPECT().Platform().Return(domain.PlatformMeta).AnyTimes()
	googleFetcher := schedulermocks.NewMockDailyKpiFetcher(ctrl)
	googleFetcher.EXPECT().Platform().Return(domain.PlatformGoogle).AnyTimes()

	service := syncTestService(clientRepo, dailyKpiRepo, metaFetcher, googleFetcher)

	// Cliente com as duas plataformas, cliente só com Meta e cliente sem contas
	clients := []*domain.Client{
		{ID: "client-1", MetaAccountID: stringPtr("act_1"), GoogleAccountID: stringPtr("g-1")},
		{ID: "client-2", MetaAccountID: stringPtr("act_2")},
		{ID: "client-3"},
	}

	metaFetcher.EXPECT().
		FetchDailyKpis(gomock.Any(), "client-1", "act_1", startDate, endDate).
		Return([]*domain.DailyKpiEntry{kpiEntry("client-1", domain.PlatformMeta, startDate)}, nil)
	metaFetcher.EXPECT().
		FetchDailyKpis(gomock.Any(), "client-2", "act_2", startDate, endDate).
		Return([]*domain.DailyKpiEntry{kpiEntry("client-2", domain.PlatformMeta, startDate)}, nil)
	googleFetcher.EXPECT().
		FetchDailyKpis(gomock.Any(), "client-1", "g-1", startDate, endDate).
		Return([]*domain.DailyKpiEntry{kpiEntry("client-1", domain.PlatformGoogle, startDate)}, nil)

	dailyKpiRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(3)

	service.processClients(context.Background(), clients, startDate, endDate)
}
