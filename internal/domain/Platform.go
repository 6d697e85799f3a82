package domain

// Platform identifica a plataforma de anúncios de origem dos dados
type Platform string

const (
	PlatformMeta   Platform = "meta"
	PlatformGoogle Platform = "google"
)

// Granularity identifica a granularidade de um período de agregação
type Granularity string

const (
	GranularityMonth Granularity = "monthly"
	GranularityWeek  Granularity = "weekly"
)

// Origens possíveis dos dados retornados pelas camadas de cache e agregação.
// Consumidores usam o sufixo "stale" para exibir o indicador de dados desatualizados.
const (
	DataSourceMemoryCache     = "memory_cache"
	DataSourceSmartCacheFresh = "smart_cache_fresh"
	DataSourceSmartCacheStale = "smart_cache_stale"
	DataSourceLiveAPI         = "live_api"
	DataSourceDailyKpi        = "daily_kpi"
	DataSourceDailyKpiStale   = "daily_kpi_stale"
	DataSourceDailyKpiEmpty   = "daily_kpi_empty"
	DataSourceSummary         = "campaign_summary"
)
