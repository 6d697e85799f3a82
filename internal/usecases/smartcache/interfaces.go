package smartcache

import (
	"context"
	"time"

	"github.com/wmarczak/reporting-api/internal/domain"
)

// PlatformFetcher abstrai a busca ao vivo de campanhas em uma plataforma de
// anúncios. Implementado pelos integradores de Meta e Google.
type PlatformFetcher interface {
	// Platform identifica a plataforma atendida pelo fetcher
	Platform() domain.Platform

	// FetchCampaignInsights busca as campanhas normalizadas do intervalo
	FetchCampaignInsights(ctx context.Context, accountID string, startDate, endDate time.Time) ([]domain.UnifiedCampaign, error)
}

// CacheResult é o resultado de uma consulta ao smart cache, com a origem dos
// dados para o consumidor decidir se exibe indicador de desatualização
type CacheResult struct {
	Success   bool                  `json:"success"`
	Data      *domain.PeriodPayload `json:"data,omitempty"`
	Source    string                `json:"source"`
	FromCache bool                  `json:"from_cache"`
}

// UnifiedResult combina os resultados das duas plataformas em um agregado único
type UnifiedResult struct {
	Totals    *domain.PlatformTotals     `json:"totals"`
	Campaigns []domain.UnifiedCampaign   `json:"campaigns"`
	Sources   map[domain.Platform]string `json:"sources"`
	Partial   bool                       `json:"partial"`
}

// SmartCacher é a camada de cache do período corrente: serve dados frescos do
// banco quando possível e só vai às APIs das plataformas quando necessário
type SmartCacher interface {
	// GetMonthData retorna os dados do mês corrente do cliente na plataforma
	GetMonthData(ctx context.Context, clientID string, platform domain.Platform, force bool) (*CacheResult, error)

	// GetWeekData retorna os dados da semana ISO corrente
	GetWeekData(ctx context.Context, clientID string, platform domain.Platform, force bool) (*CacheResult, error)

	// GetUnifiedData busca as duas plataformas em paralelo e combina os totais
	GetUnifiedData(ctx context.Context, clientID string, granularity domain.Granularity, force bool) (*UnifiedResult, error)

	// InvalidateClient remove as entradas do cliente do cache em memória
	InvalidateClient(clientID string)
}
