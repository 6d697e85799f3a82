package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/infrastructure/repository"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/period"
)

// TransitionResult contabiliza uma varredura de virada de período em uma
// granularidade
type TransitionResult struct {
	Granularity domain.Granularity `json:"granularity"`
	Archived    int                `json:"archived"`
	Errors      int                `json:"errors"`
}

// PeriodTransitionService detecta caches de período corrente que ficaram para
// trás após a virada de mês ou semana, arquiva cada um como resumo permanente
// e só então remove a linha do cache. A ordem arquivar-depois-apagar torna a
// varredura idempotente: uma falha no meio deixa a linha para a próxima rodada.
type PeriodTransitionService struct {
	scheduler           *gocron.Scheduler
	appConfig           *config.Config
	cacheRepo           repository.CurrentPeriodCacheRepository
	summaryRepo         repository.CampaignSummaryRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResults         []TransitionResult
	nowFunc             func() time.Time
}

// NewPeriodTransitionService cria uma nova instância do serviço de virada de período
func NewPeriodTransitionService(
	cacheRepo repository.CurrentPeriodCacheRepository,
	summaryRepo repository.CampaignSummaryRepository,
	appConfig *config.Config,
) *PeriodTransitionService {
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.PeriodTransition.CronSchedule,
		"sync_enabled":  appConfig.PeriodTransition.Enabled,
	}).Info("Configuração do agendador de virada de período carregada")

	return &PeriodTransitionService{
		scheduler:   scheduler,
		appConfig:   appConfig,
		cacheRepo:   cacheRepo,
		summaryRepo: summaryRepo,
		nowFunc:     time.Now,
	}
}

// Start inicia o agendador
func (s *PeriodTransitionService) Start(ctx context.Context) error {
	if !s.appConfig.PeriodTransition.Enabled {
		logrus.Info("Varredura de virada de período desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.appConfig.PeriodTransition.CronSchedule).Info("Iniciando agendador de virada de período")

	_, err := s.scheduler.Cron(s.appConfig.PeriodTransition.CronSchedule).Do(func() {
		s.runTransition()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de virada de período: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de virada de período")
		s.scheduler.Stop()
	}()

	return nil
}

// runTransition varre as duas granularidades arquivando caches expirados
func (s *PeriodTransitionService) runTransition() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de virada de período já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de virada de período")

	results := make([]TransitionResult, 0, 2)
	for _, granularity := range []domain.Granularity{domain.GranularityMonth, domain.GranularityWeek} {
		results = append(results, s.sweepGranularity(granularity))
	}

	s.syncMutex.Lock()
	s.lastResults = results
	s.syncMutex.Unlock()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"results":  results,
	}).Info("Varredura de virada de período concluída")

	s.lastSyncCompletedAt = time.Now()
}

// sweepGranularity arquiva os caches de uma granularidade cujo período não é
// mais o corrente
func (s *PeriodTransitionService) sweepGranularity(granularity domain.Granularity) TransitionResult {
	result := TransitionResult{Granularity: granularity}

	now := s.nowFunc().UTC()
	currentPeriodID := period.PeriodID(now, granularity)

	expired, err := s.cacheRepo.ListExpired(granularity, currentPeriodID)
	if err != nil {
		logrus.WithError(err).WithField("granularity", granularity).Error("Erro ao listar caches de período expirados")
		result.Errors++
		return result
	}

	if len(expired) == 0 {
		logrus.WithField("granularity", granularity).Debug("Nenhum cache de período expirado para arquivar")
		return result
	}

	for _, entry := range expired {
		if err := s.archiveEntry(granularity, entry); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"client_id": entry.ClientID,
				"platform":  entry.Platform,
				"period_id": entry.PeriodID,
			}).Error("Erro ao arquivar cache de período expirado")
			result.Errors++
			continue
		}
		result.Archived++
	}

	logrus.WithFields(logrus.Fields{
		"granularity": granularity,
		"archived":    result.Archived,
		"errors":      result.Errors,
	}).Info("Granularidade varrida na virada de período")

	return result
}

// archiveEntry grava o resumo permanente e só então remove a linha do cache
func (s *PeriodTransitionService) archiveEntry(granularity domain.Granularity, entry *domain.CurrentPeriodCacheEntry) error {
	startDate, _, err := period.ParsePeriodID(entry.PeriodID)
	if err != nil {
		return fmt.Errorf("identificador de período inválido no cache: %w", err)
	}

	summary := domain.NewPeriodSummaryFromCache(entry, granularity, startDate)

	if err := s.summaryRepo.SaveOrUpdate(summary); err != nil {
		return fmt.Errorf("erro ao gravar resumo do período: %w", err)
	}

	if err := s.cacheRepo.Delete(granularity, entry.ID); err != nil {
		// O resumo já está salvo: a próxima varredura vai rearquivar (upsert
		// idempotente) e tentar apagar de novo
		return fmt.Errorf("erro ao remover cache arquivado: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"client_id":   entry.ClientID,
		"platform":    entry.Platform,
		"period_id":   entry.PeriodID,
		"granularity": granularity,
	}).Info("Cache de período arquivado como resumo permanente")

	return nil
}

// TriggerManualSync inicia manualmente uma varredura de virada de período
func (s *PeriodTransitionService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de virada de período já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando varredura manual de virada de período")
	go s.runTransition()
}

// GetStatus retorna o status atual da varredura
func (s *PeriodTransitionService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.appConfig.PeriodTransition.CronSchedule,
		"sync_enabled":           s.appConfig.PeriodTransition.Enabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_results":           s.lastResults,
	}
}
