package aggregating

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/infrastructure/repository"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
)

// Aggregator agrega linhas de KPIs diários em totais de período
type Aggregator interface {
	// CalculateTotals agrega as linhas diárias do intervalo em um total de período
	CalculateTotals(clientID string, platform domain.Platform, startDate, endDate time.Time) (*domain.MonthlyTotals, error)

	// ValidateConsistency confere a agregação em memória contra uma soma
	// independente feita pelo banco
	ValidateConsistency(clientID string, platform domain.Platform, startDate, endDate time.Time) (*domain.ConsistencyReport, error)
}

type Service struct {
	cfg                *config.Config
	dailyKpiRepository repository.DailyKpiRepository
}

func NewService(cfg *config.Config, dailyKpiRepo repository.DailyKpiRepository) Aggregator {
	return &Service{
		cfg:                cfg,
		dailyKpiRepository: dailyKpiRepo,
	}
}

// CalculateTotals soma as linhas diárias do intervalo pedido. Quando o
// intervalo não tem nenhuma linha, cai para as últimas linhas disponíveis do
// cliente, marcadas como desatualizadas; sem linha nenhuma, retorna totais
// zerados em vez de erro.
func (s *Service) CalculateTotals(clientID string, platform domain.Platform, startDate, endDate time.Time) (*domain.MonthlyTotals, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	entries, err := s.dailyKpiRepository.GetByDateRange(clientID, platform, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar KPIs diários: %w", err)
	}

	dataSource := domain.DataSourceDailyKpi

	if len(entries) == 0 {
		lookback := s.cfg.Aggregation.StaleLookbackRows
		entries, err = s.dailyKpiRepository.GetMostRecent(clientID, platform, lookback)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar KPIs diários mais recentes: %w", err)
		}

		if len(entries) == 0 {
			logrus.WithFields(logrus.Fields{
				"client_id": clientID,
				"platform":  platform,
			}).Info("aggregation: nenhum KPI diário disponível para o cliente")

			return &domain.MonthlyTotals{
				ClientID:   clientID,
				Platform:   platform,
				StartDate:  startDate,
				EndDate:    endDate,
				DataSource: domain.DataSourceDailyKpiEmpty,
			}, nil
		}

		dataSource = domain.DataSourceDailyKpiStale
		logrus.WithFields(logrus.Fields{
			"client_id":  clientID,
			"platform":   platform,
			"start_date": startDate.Format(time.DateOnly),
			"end_date":   endDate.Format(time.DateOnly),
			"rows":       len(entries),
		}).Warn("aggregation: intervalo sem dados, usando linhas mais recentes como fallback")
	}

	totals := s.sumEntries(entries)

	result := &domain.MonthlyTotals{
		ClientID:     clientID,
		Platform:     platform,
		StartDate:    startDate,
		EndDate:      endDate,
		Totals:       *totals,
		DaysIncluded: len(entries),
		DataSource:   dataSource,
	}

	first, last := dateSpan(entries)
	result.FirstDay = first
	result.LastDay = last

	return result, nil
}

// ValidateConsistency compara os cliques agregados em memória com a soma
// calculada diretamente pelo banco sobre as mesmas linhas
func (s *Service) ValidateConsistency(clientID string, platform domain.Platform, startDate, endDate time.Time) (*domain.ConsistencyReport, error) {
	entries, err := s.dailyKpiRepository.GetByDateRange(clientID, platform, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar KPIs diários: %w", err)
	}

	aggregated := 0
	for _, entry := range entries {
		aggregated += entry.Clicks
	}

	independent, err := s.dailyKpiRepository.SumClicks(clientID, platform, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar cliques no banco: %w", err)
	}

	report := &domain.ConsistencyReport{
		AggregatedClicks:  aggregated,
		IndependentClicks: independent,
	}

	report.AbsoluteDiff = aggregated - independent
	if report.AbsoluteDiff < 0 {
		report.AbsoluteDiff = -report.AbsoluteDiff
	}

	if independent > 0 {
		report.PercentageDiff = float64(report.AbsoluteDiff) / float64(independent) * 100
	}

	report.Consistent = report.AbsoluteDiff == 0

	if !report.Consistent {
		logrus.WithFields(logrus.Fields{
			"client_id":          clientID,
			"platform":           platform,
			"aggregated_clicks":  aggregated,
			"independent_clicks": independent,
		}).Error("aggregation: divergência entre agregação em memória e soma do banco")
	}

	return report, nil
}

// sumEntries acumula os campos aditivos e só então recalcula CTR, CPC e CPA
// sobre as somas. Médias de razões diárias produziriam valores errados para
// dias com volumes diferentes.
func (s *Service) sumEntries(entries []*domain.DailyKpiEntry) *domain.PlatformTotals {
	totals := &domain.PlatformTotals{}

	for _, entry := range entries {
		totals.Spend += entry.Spend
		totals.Impressions += entry.Impressions
		totals.Clicks += entry.Clicks
		totals.Conversions += entry.Conversions
		totals.Funnel.Add(entry.Funnel)
	}

	totals.RecomputeDerived()

	return totals
}

func dateSpan(entries []*domain.DailyKpiEntry) (*time.Time, *time.Time) {
	if len(entries) == 0 {
		return nil, nil
	}

	first := entries[0].Date
	last := entries[0].Date
	for _, entry := range entries[1:] {
		if entry.Date.Before(first) {
			first = entry.Date
		}
		if entry.Date.After(last) {
			last = entry.Date
		}
	}

	return &first, &last
}
