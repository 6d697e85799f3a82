package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wmarczak/reporting-api/infrastructure/repository/mocks"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func transitionTestConfig() *config.Config {
	return &config.Config{
		PeriodTransition: config.PeriodTransition{
			CronSchedule: "0 * * * *",
			Enabled:      true,
		},
	}
}

func expiredMonthEntry() *domain.CurrentPeriodCacheEntry {
	return &domain.CurrentPeriodCacheEntry{
		ID:       10,
		ClientID: "client-1",
		Platform: domain.PlatformMeta,
		PeriodID: "2024-09",
		Payload: &domain.PeriodPayload{
			Totals: domain.PlatformTotals{
				Spend:       1500,
				Impressions: 30000,
				Clicks:      600,
				Conversions: 45,
				Funnel:      domain.FunnelMetrics{Reservations: 45, ReservationValue: 9000},
			},
			FetchedAt: time.Date(2024, 9, 30, 23, 0, 0, 0, time.UTC),
		},
		LastUpdated: time.Date(2024, 9, 30, 23, 0, 0, 0, time.UTC),
	}
}

func TestPeriodTransitionService_sweepGranularity(t *testing.T) {
	now := time.Date(2024, 10, 1, 3, 0, 0, 0, time.UTC)

	t.Run("Cache expirado é arquivado como resumo e depois removido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
		summaryRepo := mocks.NewMockCampaignSummaryRepository(ctrl)

		service := &PeriodTransitionService{
			appConfig:   transitionTestConfig(),
			cacheRepo:   cacheRepo,
			summaryRepo: summaryRepo,
			nowFunc:     func() time.Time { return now },
		}

		entry := expiredMonthEntry()

		cacheRepo.EXPECT().
			ListExpired(domain.GranularityMonth, "2024-10").
			Return([]*domain.CurrentPeriodCacheEntry{entry}, nil)

		gomock.InOrder(
			summaryRepo.EXPECT().
				SaveOrUpdate(gomock.Any()).
				DoAndReturn(func(summary *domain.PeriodSummaryEntry) error {
					assert.Equal(t, "client-1", summary.ClientID)
					assert.Equal(t, domain.GranularityMonth, summary.SummaryType)
					assert.Equal(t, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), summary.SummaryDate)
					assert.Equal(t, domain.PlatformMeta, summary.Platform)
					assert.Equal(t, 1500.0, summary.Totals.Spend)
					assert.Equal(t, 6.0, summary.ROAS)
					assert.InDelta(t, 33.33, summary.CostPerReservation, 0.001)
					return nil
				}),
			cacheRepo.EXPECT().Delete(domain.GranularityMonth, int64(10)).Return(nil),
		)

		result := service.sweepGranularity(domain.GranularityMonth)

		assert.Equal(t, 1, result.Archived)
		assert.Equal(t, 0, result.Errors)
	})

	t.Run("Falha ao gravar o resumo não remove a linha do cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
		summaryRepo := mocks.NewMockCampaignSummaryRepository(ctrl)

		service := &PeriodTransitionService{
			appConfig:   transitionTestConfig(),
			cacheRepo:   cacheRepo,
			summaryRepo: summaryRepo,
			nowFunc:     func() time.Time { return now },
		}

		cacheRepo.EXPECT().
			ListExpired(domain.GranularityMonth, "2024-10").
			Return([]*domain.CurrentPeriodCacheEntry{expiredMonthEntry()}, nil)

		summaryRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(fmt.Errorf("banco indisponível"))

		// Delete nunca é chamado: a linha fica para a próxima varredura
		result := service.sweepGranularity(domain.GranularityMonth)

		assert.Equal(t, 0, result.Archived)
		assert.Equal(t, 1, result.Errors)
	})

	t.Run("Falha ao remover depois do arquivamento é rearquivável", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
		summaryRepo := mocks.NewMockCampaignSummaryRepository(ctrl)

		service := &PeriodTransitionService{
			appConfig:   transitionTestConfig(),
			cacheRepo:   cacheRepo,
			summaryRepo: summaryRepo,
			nowFunc:     func() time.Time { return now },
		}

		// Primeira varredura: o resumo grava mas a remoção falha
		cacheRepo.EXPECT().
			ListExpired(domain.GranularityMonth, "2024-10").
			Return([]*domain.CurrentPeriodCacheEntry{expiredMonthEntry()}, nil)
		summaryRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		cacheRepo.EXPECT().
			Delete(domain.GranularityMonth, int64(10)).
			Return(fmt.Errorf("banco indisponível"))

		result := service.sweepGranularity(domain.GranularityMonth)
		assert.Equal(t, 0, result.Archived)
		assert.Equal(t, 1, result.Errors)

		// Segunda varredura: o upsert idempotente rearquiva e a remoção conclui
		cacheRepo.EXPECT().
			ListExpired(domain.GranularityMonth, "2024-10").
			Return([]*domain.CurrentPeriodCacheEntry{expiredMonthEntry()}, nil)
		summaryRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		cacheRepo.EXPECT().Delete(domain.GranularityMonth, int64(10)).Return(nil)

		result = service.sweepGranularity(domain.GranularityMonth)
		assert.Equal(t, 1, result.Archived)
		assert.Equal(t, 0, result.Errors)
	})

	t.Run("Identificador de período inválido conta como erro sem abortar a varredura", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
		summaryRepo := mocks.NewMockCampaignSummaryRepository(ctrl)

		service := &PeriodTransitionService{
			appConfig:   transitionTestConfig(),
			cacheRepo:   cacheRepo,
			summaryRepo: summaryRepo,
			nowFunc:     func() time.Time { return now },
		}

		corrupted := expiredMonthEntry()
		corrupted.PeriodID = "lixo"

		valid := expiredMonthEntry()
		valid.ID = 11

		cacheRepo.EXPECT().
			ListExpired(domain.GranularityMonth, "2024-10").
			Return([]*domain.CurrentPeriodCacheEntry{corrupted, valid}, nil)

		summaryRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		cacheRepo.EXPECT().Delete(domain.GranularityMonth, int64(11)).Return(nil)

		result := service.sweepGranularity(domain.GranularityMonth)

		assert.Equal(t, 1, result.Archived)
		assert.Equal(t, 1, result.Errors)
	})

	t.Run("Semana expirada arquivada com a data de início da semana ISO", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		cacheRepo := mocks.NewMockCurrentPeriodCacheRepository(ctrl)
		summaryRepo := mocks.NewMockCampaignSummaryRepository(ctrl)

		service := &PeriodTransitionService{
			appConfig:   transitionTestConfig(),
			cacheRepo:   cacheRepo,
			summaryRepo: summaryRepo,
			nowFunc:     func() time.Time { return now },
		}

		entry := expiredMonthEntry()
		entry.PeriodID = "2024-W39"

		cacheRepo.EXPECT().
			ListExpired(domain.GranularityWeek, "2024-W40").
			Return([]*domain.CurrentPeriodCacheEntry{entry}, nil)

		summaryRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			DoAndReturn(func(summary *domain.PeriodSummaryEntry) error {
				assert.Equal(t, domain.GranularityWeek, summary.SummaryType)
				// Semana ISO 39 de 2024 começa na segunda 23 de setembro
				assert.Equal(t, time.Date(2024, 9, 23, 0, 0, 0, 0, time.UTC), summary.SummaryDate)
				return nil
			})
		cacheRepo.EXPECT().Delete(domain.GranularityWeek, int64(10)).Return(nil)

		result := service.sweepGranularity(domain.GranularityWeek)

		assert.Equal(t, 1, result.Archived)
	})
}
