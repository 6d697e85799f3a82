package domain

import (
	"time"
)

// PeriodPayload é o conteúdo JSON armazenado no cache do período corrente:
// o último agregado buscado ao vivo com suas campanhas
type PeriodPayload struct {
	Totals    PlatformTotals    `json:"totals"`
	Campaigns []UnifiedCampaign `json:"campaigns"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// CurrentPeriodCacheEntry representa uma linha das tabelas current_month_cache
// e current_week_cache: uma por (cliente, plataforma), com o identificador do
// período em andamento e o payload do último fetch. Ao detectar a virada de
// período a linha é arquivada em campaign_summaries e apagada.
type CurrentPeriodCacheEntry struct {
	ID          int64          `json:"id"`
	ClientID    string         `json:"client_id"`
	Platform    Platform       `json:"platform"`
	PeriodID    string         `json:"period_id"`
	Payload     *PeriodPayload `json:"payload"`
	LastUpdated time.Time      `json:"last_updated"`
	CreatedAt   time.Time      `json:"created_at"`
}
