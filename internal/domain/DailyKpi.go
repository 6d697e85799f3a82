package domain

import (
	"time"
)

// DailyKpiEntry representa uma linha de métricas diárias por (cliente, data,
// plataforma) armazenada no banco. Imutável depois que o dia fecha; o dia
// corrente é atualizado por upsert enquanto ainda acumula dados.
type DailyKpiEntry struct {
	ID          int64         `json:"id"`
	ClientID    string        `json:"client_id"`
	Date        time.Time     `json:"date"`
	Platform    Platform      `json:"platform"`
	Spend       float64       `json:"spend"`
	Impressions int           `json:"impressions"`
	Clicks      int           `json:"clicks"`
	Conversions int           `json:"conversions"`
	Funnel      FunnelMetrics `json:"funnel"`
	AverageCtr  float64       `json:"average_ctr"`
	AverageCpc  float64       `json:"average_cpc"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// MonthlyTotals é o resultado da agregação de linhas diárias em um período
type MonthlyTotals struct {
	ClientID     string         `json:"client_id"`
	Platform     Platform       `json:"platform"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      time.Time      `json:"end_date"`
	Totals       PlatformTotals `json:"totals"`
	DaysIncluded int            `json:"days_included"`
	FirstDay     *time.Time     `json:"first_day,omitempty"`
	LastDay      *time.Time     `json:"last_day,omitempty"`
	DataSource   string         `json:"data_source"`
}

// ConsistencyReport é o resultado da validação independente da agregação
type ConsistencyReport struct {
	AggregatedClicks  int     `json:"aggregated_clicks"`
	IndependentClicks int     `json:"independent_clicks"`
	AbsoluteDiff      int     `json:"absolute_diff"`
	PercentageDiff    float64 `json:"percentage_diff"`
	Consistent        bool    `json:"consistent"`
}
