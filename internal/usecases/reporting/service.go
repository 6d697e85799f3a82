package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/infrastructure/repository"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/period"
	"github.com/wmarczak/reporting-api/internal/usecases/aggregating"
	"github.com/wmarczak/reporting-api/internal/usecases/smartcache"
)

// PeriodReport é a resposta unificada de relatório de um período, qualquer
// que seja a camada que o serviu
type PeriodReport struct {
	ClientID    string                   `json:"client_id"`
	Platform    domain.Platform          `json:"platform"`
	Granularity domain.Granularity       `json:"granularity"`
	PeriodID    string                   `json:"period_id"`
	StartDate   time.Time                `json:"start_date"`
	EndDate     time.Time                `json:"end_date"`
	Totals      domain.PlatformTotals    `json:"totals"`
	Campaigns   []domain.UnifiedCampaign `json:"campaigns,omitempty"`
	DataSource  string                   `json:"data_source"`
}

// CleanupReport resume o resultado de uma rodada de limpeza de retenção
type CleanupReport struct {
	DailyRowsDeleted   int64 `json:"daily_rows_deleted"`
	SummaryRowsDeleted int64 `json:"summary_rows_deleted"`
}

// Reporter roteia cada consulta de relatório para a camada certa: smart cache
// para o período corrente, agregação diária para períodos recentes e resumos
// permanentes para o histórico antigo
type Reporter interface {
	GetPeriodReport(ctx context.Context, clientID string, platform domain.Platform, granularity domain.Granularity, date time.Time, force bool) (*PeriodReport, error)
	GetUnifiedReport(ctx context.Context, clientID string, granularity domain.Granularity, date time.Time, force bool) (*smartcache.UnifiedResult, error)
	CleanupOldData() (*CleanupReport, error)
}

type Service struct {
	cfg         *config.Config
	smartCache  smartcache.SmartCacher
	aggregator  aggregating.Aggregator
	dailyRepo   repository.DailyKpiRepository
	summaryRepo repository.CampaignSummaryRepository
	nowFunc     func() time.Time
}

func NewService(
	cfg *config.Config,
	smartCache smartcache.SmartCacher,
	aggregator aggregating.Aggregator,
	dailyRepo repository.DailyKpiRepository,
	summaryRepo repository.CampaignSummaryRepository,
) Reporter {
	return &Service{
		cfg:         cfg,
		smartCache:  smartCache,
		aggregator:  aggregator,
		dailyRepo:   dailyRepo,
		summaryRepo: summaryRepo,
		nowFunc:     time.Now,
	}
}

// GetPeriodReport resolve o relatório do período que contém a data informada.
// A camada escolhida depende da idade do período em relação à retenção de
// KPIs diários.
func (s *Service) GetPeriodReport(ctx context.Context, clientID string, platform domain.Platform, granularity domain.Granularity, date time.Time, force bool) (*PeriodReport, error) {
	now := s.nowFunc().UTC()
	startDate, endDate := period.BoundariesFor(date, granularity)
	requestedID := period.PeriodID(date, granularity)
	currentID := period.PeriodID(now, granularity)

	report := &PeriodReport{
		ClientID:    clientID,
		Platform:    platform,
		Granularity: granularity,
		PeriodID:    requestedID,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	// Período corrente: smart cache, que decide entre as camadas de cache e a
	// API ao vivo
	if requestedID == currentID {
		result, err := s.getCurrentPeriod(ctx, clientID, platform, granularity, force)
		if err != nil {
			return nil, err
		}

		if result.Data != nil {
			report.Totals = result.Data.Totals
			report.Campaigns = result.Data.Campaigns
		}
		report.DataSource = result.Source
		return report, nil
	}

	// Período fechado dentro da retenção diária: agrega sob demanda a partir
	// das linhas diárias
	retentionCutoff := now.AddDate(0, 0, -s.cfg.RetentionCleanup.DailyRetentionDays)
	if startDate.After(retentionCutoff) {
		totals, err := s.aggregator.CalculateTotals(clientID, platform, startDate, endDate)
		if err != nil {
			return nil, err
		}

		report.Totals = totals.Totals
		report.DataSource = totals.DataSource
		return report, nil
	}

	// Histórico antigo: só os resumos permanentes ainda existem
	summary, err := s.summaryRepo.GetByPeriod(clientID, granularity, startDate, platform)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar resumo de período: %w", err)
	}
	if summary == nil {
		return nil, fmt.Errorf("nenhum resumo encontrado para o cliente %s no período %s", clientID, requestedID)
	}

	report.Totals = summary.Totals
	report.Campaigns = summary.Campaigns
	report.DataSource = domain.DataSourceSummary
	return report, nil
}

// GetUnifiedReport combina as duas plataformas. Para o período corrente o
// smart cache já sabe combinar; para períodos fechados cada plataforma é
// resolvida separadamente e os totais recombinados sobre as somas.
func (s *Service) GetUnifiedReport(ctx context.Context, clientID string, granularity domain.Granularity, date time.Time, force bool) (*smartcache.UnifiedResult, error) {
	now := s.nowFunc().UTC()
	if period.PeriodID(date, granularity) == period.PeriodID(now, granularity) {
		return s.smartCache.GetUnifiedData(ctx, clientID, granularity, force)
	}

	unified := &smartcache.UnifiedResult{
		Sources: make(map[domain.Platform]string, 2),
	}

	totalsByPlatform := make(map[domain.Platform]*domain.PlatformTotals, 2)
	for _, platform := range []domain.Platform{domain.PlatformMeta, domain.PlatformGoogle} {
		report, err := s.GetPeriodReport(ctx, clientID, platform, granularity, date, force)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"client_id": clientID,
				"platform":  platform,
			}).Warn("reporting: plataforma sem dados para o período, combinando resultado parcial")
			unified.Partial = true
			unified.Sources[platform] = "unavailable"
			continue
		}

		totals := report.Totals
		totalsByPlatform[platform] = &totals
		unified.Campaigns = append(unified.Campaigns, report.Campaigns...)
		unified.Sources[platform] = report.DataSource
	}

	if len(totalsByPlatform) == 0 {
		return nil, fmt.Errorf("nenhuma plataforma retornou dados para o cliente %s", clientID)
	}

	unified.Totals = domain.CombinePlatformTotals(
		totalsByPlatform[domain.PlatformMeta],
		totalsByPlatform[domain.PlatformGoogle],
	)

	return unified, nil
}

// CleanupOldData aplica a política de retenção: KPIs diários além da janela
// em dias e resumos além da janela em meses
func (s *Service) CleanupOldData() (*CleanupReport, error) {
	report := &CleanupReport{}

	dailyDeleted, err := s.dailyRepo.DeleteOlderThan(s.cfg.RetentionCleanup.DailyRetentionDays)
	if err != nil {
		return nil, fmt.Errorf("erro ao limpar KPIs diários antigos: %w", err)
	}
	report.DailyRowsDeleted = dailyDeleted

	summaryDeleted, err := s.summaryRepo.DeleteOlderThanMonths(s.cfg.RetentionCleanup.SummaryRetentionMonths)
	if err != nil {
		return nil, fmt.Errorf("erro ao limpar resumos antigos: %w", err)
	}
	report.SummaryRowsDeleted = summaryDeleted

	logrus.WithFields(logrus.Fields{
		"daily_rows":   dailyDeleted,
		"summary_rows": summaryDeleted,
	}).Info("reporting: limpeza de retenção concluída")

	return report, nil
}

func (s *Service) getCurrentPeriod(ctx context.Context, clientID string, platform domain.Platform, granularity domain.Granularity, force bool) (*smartcache.CacheResult, error) {
	if granularity == domain.GranularityWeek {
		return s.smartCache.GetWeekData(ctx, clientID, platform, force)
	}
	return s.smartCache.GetMonthData(ctx, clientID, platform, force)
}
