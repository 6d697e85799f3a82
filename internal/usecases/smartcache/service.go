package smartcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/infrastructure/repository"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/period"
	"github.com/wmarczak/reporting-api/pkg/memcache"
)

type inflightCall struct {
	wg     sync.WaitGroup
	result *CacheResult
	err    error
}

type Service struct {
	cfg        *config.Config
	clientRepo repository.ClientRepository
	cacheRepo  repository.CurrentPeriodCacheRepository
	memCache   *memcache.Cache
	fetchers   map[domain.Platform]PlatformFetcher
	nowFunc    func() time.Time

	inflightMu sync.Mutex
	inflight   map[string]*inflightCall
}

func NewService(
	cfg *config.Config,
	clientRepo repository.ClientRepository,
	cacheRepo repository.CurrentPeriodCacheRepository,
	memCache *memcache.Cache,
	fetchers ...PlatformFetcher,
) SmartCacher {
	byPlatform := make(map[domain.Platform]PlatformFetcher, len(fetchers))
	for _, f := range fetchers {
		byPlatform[f.Platform()] = f
	}

	return &Service{
		cfg:        cfg,
		clientRepo: clientRepo,
		cacheRepo:  cacheRepo,
		memCache:   memCache,
		fetchers:   byPlatform,
		nowFunc:    time.Now,
		inflight:   make(map[string]*inflightCall),
	}
}

func (s *Service) GetMonthData(ctx context.Context, clientID string, platform domain.Platform, force bool) (*CacheResult, error) {
	return s.getPeriodData(ctx, domain.GranularityMonth, clientID, platform, force)
}

func (s *Service) GetWeekData(ctx context.Context, clientID string, platform domain.Platform, force bool) (*CacheResult, error) {
	return s.getPeriodData(ctx, domain.GranularityWeek, clientID, platform, force)
}

// GetUnifiedData busca as duas plataformas em paralelo e soma os totais.
// A falha de uma plataforma não derruba a resposta: o resultado sai parcial,
// com a contribuição da plataforma que falhou zerada.
func (s *Service) GetUnifiedData(ctx context.Context, clientID string, granularity domain.Granularity, force bool) (*UnifiedResult, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("cliente não encontrado: %s", clientID)
	}

	platforms := make([]domain.Platform, 0, 2)
	if client.HasMeta() {
		platforms = append(platforms, domain.PlatformMeta)
	}
	if client.HasGoogle() {
		platforms = append(platforms, domain.PlatformGoogle)
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("cliente sem contas de anúncios configuradas: %s", clientID)
	}

	type platformResult struct {
		platform domain.Platform
		result   *CacheResult
		err      error
	}

	results := make(chan platformResult, len(platforms))
	var wg sync.WaitGroup

	for _, p := range platforms {
		wg.Add(1)
		go func(p domain.Platform) {
			defer wg.Done()
			res, err := s.getPeriodData(ctx, granularity, clientID, p, force)
			results <- platformResult{platform: p, result: res, err: err}
		}(p)
	}

	wg.Wait()
	close(results)

	unified := &UnifiedResult{
		Sources: make(map[domain.Platform]string, len(platforms)),
	}

	totalsByPlatform := make(map[domain.Platform]*domain.PlatformTotals, len(platforms))
	for r := range results {
		if r.err != nil || r.result == nil || !r.result.Success || r.result.Data == nil {
			logrus.WithError(r.err).WithFields(logrus.Fields{
				"client_id": clientID,
				"platform":  r.platform,
			}).Warn("smartcache: plataforma indisponível, combinando resultado parcial")
			unified.Partial = true
			unified.Sources[r.platform] = "unavailable"
			continue
		}

		totalsByPlatform[r.platform] = &r.result.Data.Totals
		unified.Campaigns = append(unified.Campaigns, r.result.Data.Campaigns...)
		unified.Sources[r.platform] = r.result.Source
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

// InvalidateClient remove todas as entradas do cliente do cache em memória.
// O cache do banco não é tocado: ele será atualizado pela próxima consulta.
func (s *Service) InvalidateClient(clientID string) {
	removed := s.memCache.DeletePattern(fmt.Sprintf("smart:*:%s:*", clientID))
	logrus.WithFields(logrus.Fields{
		"client_id": clientID,
		"removed":   removed,
	}).Info("smartcache: entradas do cliente removidas do cache em memória")
}

func cacheKey(granularity domain.Granularity, clientID string, platform domain.Platform) string {
	return fmt.Sprintf("smart:%s:%s:%s", granularity, clientID, platform)
}

// getPeriodData é o núcleo da camada: cache em memória, depois a linha do
// banco, e só então a API da plataforma. Consultas concorrentes para a mesma
// chave compartilham um único fetch.
func (s *Service) getPeriodData(ctx context.Context, granularity domain.Granularity, clientID string, platform domain.Platform, force bool) (*CacheResult, error) {
	key := cacheKey(granularity, clientID, platform)

	if !force {
		if cached, ok := s.memCache.Get(key); ok {
			if payload, ok := cached.(*domain.PeriodPayload); ok {
				return &CacheResult{
					Success:   true,
					Data:      payload,
					Source:    domain.DataSourceMemoryCache,
					FromCache: true,
				}, nil
			}
		}
	}

	// Deduplicação de consultas em voo: a primeira executa, as demais esperam
	s.inflightMu.Lock()
	if call, ok := s.inflight[key]; ok {
		s.inflightMu.Unlock()
		call.wg.Wait()
		return call.result, call.err
	}

	call := &inflightCall{}
	call.wg.Add(1)
	s.inflight[key] = call
	s.inflightMu.Unlock()

	call.result, call.err = s.resolvePeriodData(ctx, granularity, clientID, platform, force, key)

	s.inflightMu.Lock()
	delete(s.inflight, key)
	s.inflightMu.Unlock()
	call.wg.Done()

	return call.result, call.err
}

func (s *Service) resolvePeriodData(ctx context.Context, granularity domain.Granularity, clientID string, platform domain.Platform, force bool, key string) (*CacheResult, error) {
	now := s.nowFunc().UTC()
	currentPeriodID := period.PeriodID(now, granularity)

	entry, err := s.cacheRepo.GetByClientAndPlatform(granularity, clientID, platform)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar cache de período: %w", err)
	}

	ttl := time.Duration(s.cfg.SmartCache.TTLHours) * time.Hour

	if entry != nil && entry.PeriodID == currentPeriodID && entry.Payload != nil {
		age := now.Sub(entry.LastUpdated)

		if age < ttl && !force {
			s.memCache.Set(key, entry.Payload, ttl-age)
			return &CacheResult{
				Success:   true,
				Data:      entry.Payload,
				Source:    domain.DataSourceSmartCacheFresh,
				FromCache: true,
			}, nil
		}

		// Dados velhos (ou atualização forçada): tenta a API ao vivo e, se a
		// plataforma falhar, serve o que temos marcado como desatualizado
		payload, fetchErr := s.fetchAndStore(ctx, granularity, clientID, platform, currentPeriodID, now, key, ttl)
		if fetchErr != nil {
			logrus.WithError(fetchErr).WithFields(logrus.Fields{
				"client_id": clientID,
				"platform":  platform,
				"age":       age.String(),
			}).Warn("smartcache: fetch ao vivo falhou, servindo dados desatualizados")

			return &CacheResult{
				Success:   true,
				Data:      entry.Payload,
				Source:    domain.DataSourceSmartCacheStale,
				FromCache: true,
			}, nil
		}

		return &CacheResult{
			Success: true,
			Data:    payload,
			Source:  domain.DataSourceLiveAPI,
		}, nil
	}

	if entry != nil && entry.PeriodID != currentPeriodID {
		// Período virou: a linha antiga pertence à virada de período, não a
		// esta consulta. Jamais servir dados do período anterior como correntes.
		logrus.WithFields(logrus.Fields{
			"client_id": clientID,
			"platform":  platform,
			"cached":    entry.PeriodID,
			"current":   currentPeriodID,
		}).Info("smartcache: cache pertence a período encerrado, tratando como ausente")
	}

	payload, fetchErr := s.fetchAndStore(ctx, granularity, clientID, platform, currentPeriodID, now, key, ttl)
	if fetchErr != nil {
		return &CacheResult{Success: false, Source: domain.DataSourceLiveAPI}, fetchErr
	}

	return &CacheResult{
		Success: true,
		Data:    payload,
		Source:  domain.DataSourceLiveAPI,
	}, nil
}

// fetchAndStore busca o período corrente na API da plataforma, monta o payload
// agregado e grava nas duas camadas de cache
func (s *Service) fetchAndStore(ctx context.Context, granularity domain.Granularity, clientID string, platform domain.Platform, periodID string, now time.Time, key string, ttl time.Duration) (*domain.PeriodPayload, error) {
	fetcher, ok := s.fetchers[platform]
	if !ok {
		return nil, fmt.Errorf("nenhum fetcher registrado para a plataforma %s", platform)
	}

	accountID, err := s.resolveAccountID(clientID, platform)
	if err != nil {
		return nil, err
	}

	startDate, endDate := period.BoundariesFor(now, granularity)
	if endDate.After(now) {
		endDate = now
	}

	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.SmartCache.FetchTimeoutSeconds)*time.Second)
	defer cancel()

	campaigns, err := fetcher.FetchCampaignInsights(fetchCtx, accountID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanhas na plataforma %s: %w", platform, err)
	}

	payload := buildPayload(campaigns, now)

	entry := &domain.CurrentPeriodCacheEntry{
		ClientID:    clientID,
		Platform:    platform,
		PeriodID:    periodID,
		Payload:     payload,
		LastUpdated: now,
	}

	if err := s.cacheRepo.Upsert(granularity, entry); err != nil {
		// A persistência falhou mas os dados estão em mãos: loga e segue,
		// a próxima consulta tenta gravar de novo
		logrus.WithError(err).WithFields(logrus.Fields{
			"client_id": clientID,
			"platform":  platform,
			"period_id": periodID,
		}).Error("smartcache: erro ao persistir cache de período")
	}

	s.memCache.Set(key, payload, ttl)

	return payload, nil
}

func (s *Service) resolveAccountID(clientID string, platform domain.Platform) (string, error) {
	client, err := s.clientRepo.GetByID(clientID)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	if client == nil {
		return "", fmt.Errorf("cliente não encontrado: %s", clientID)
	}

	switch platform {
	case domain.PlatformMeta:
		if !client.HasMeta() {
			return "", fmt.Errorf("cliente %s sem conta Meta Ads configurada", clientID)
		}
		return *client.MetaAccountID, nil
	case domain.PlatformGoogle:
		if !client.HasGoogle() {
			return "", fmt.Errorf("cliente %s sem conta Google Ads configurada", clientID)
		}
		return *client.GoogleAccountID, nil
	default:
		return "", fmt.Errorf("plataforma desconhecida: %s", platform)
	}
}

func buildPayload(campaigns []domain.UnifiedCampaign, fetchedAt time.Time) *domain.PeriodPayload {
	totals := domain.PlatformTotals{}
	for _, c := range campaigns {
		totals.Spend += c.Spend
		totals.Impressions += c.Impressions
		totals.Clicks += c.Clicks
		totals.Conversions += c.Conversions
	}
	totals.Funnel = domain.AggregateFunnelMetrics(campaigns)
	totals.RecomputeDerived()

	return &domain.PeriodPayload{
		Totals:    totals,
		Campaigns: campaigns,
		FetchedAt: fetchedAt,
	}
}
