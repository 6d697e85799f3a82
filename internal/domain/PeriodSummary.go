package domain

import (
	"time"
)

// PeriodSummaryEntry representa uma linha da tabela campaign_summaries: o
// agregado permanente de um período fechado por (cliente, tipo, data, plataforma).
// Invariante: para um período fechado, a soma das linhas diárias do mesmo
// cliente/plataforma/intervalo deve bater com estes totais.
type PeriodSummaryEntry struct {
	ID                 int64             `json:"id"`
	ClientID           string            `json:"client_id"`
	SummaryType        Granularity       `json:"summary_type"`
	SummaryDate        time.Time         `json:"summary_date"`
	Platform           Platform          `json:"platform"`
	Totals             PlatformTotals    `json:"totals"`
	Campaigns          []UnifiedCampaign `json:"campaigns"`
	ROAS               float64           `json:"roas"`
	CostPerReservation float64           `json:"cost_per_reservation"`
	DataSource         string            `json:"data_source"`
	LastUpdated        time.Time         `json:"last_updated"`
	CreatedAt          time.Time         `json:"created_at"`
}

// NewPeriodSummaryFromCache constrói o resumo permanente a partir de um cache
// de período corrente que expirou, recalculando ROAS e custo por reserva
func NewPeriodSummaryFromCache(cache *CurrentPeriodCacheEntry, summaryType Granularity, summaryDate time.Time) *PeriodSummaryEntry {
	summary := &PeriodSummaryEntry{
		ClientID:    cache.ClientID,
		SummaryType: summaryType,
		SummaryDate: summaryDate,
		Platform:    cache.Platform,
		DataSource:  DataSourceSummary,
		LastUpdated: cache.LastUpdated,
	}

	if cache.Payload != nil {
		summary.Totals = cache.Payload.Totals
		summary.Campaigns = cache.Payload.Campaigns
		summary.Totals.RecomputeDerived()
		summary.ROAS = summary.Totals.Funnel.ROAS(summary.Totals.Spend)
		summary.CostPerReservation = summary.Totals.Funnel.CostPerReservation(summary.Totals.Spend)
	}

	return summary
}
