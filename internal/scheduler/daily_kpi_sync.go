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
)

// DailyKpiFetcher abstrai a busca de KPIs diários em uma plataforma de anúncios
type DailyKpiFetcher interface {
	Platform() domain.Platform
	FetchDailyKpis(ctx context.Context, clientID, accountID string, startDate, endDate time.Time) ([]*domain.DailyKpiEntry, error)
}

// DailyKpiSyncConfig representa a configuração do agendador de KPIs diários
type DailyKpiSyncConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
}

// DailyKpiSyncService sincroniza diariamente os KPIs por cliente e plataforma.
// A janela de lookback reprocessa os últimos dias porque as plataformas
// retificam números retroativamente; o upsert absorve as correções.
type DailyKpiSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailyKpiSyncConfig
	appConfig           *config.Config
	clientRepo          repository.ClientRepository
	dailyKpiRepo        repository.DailyKpiRepository
	fetchers            map[domain.Platform]DailyKpiFetcher
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewDailyKpiSyncService cria uma nova instância do serviço de sincronização de KPIs diários
func NewDailyKpiSyncService(
	clientRepo repository.ClientRepository,
	dailyKpiRepo repository.DailyKpiRepository,
	appConfig *config.Config,
	fetchers ...DailyKpiFetcher,
) *DailyKpiSyncService {
	syncConfig := DailyKpiSyncConfig{
		CronSchedule:        appConfig.DailyKpiSync.CronSchedule,
		LookbackDays:        appConfig.DailyKpiSync.LookbackDays,
		RequestDelaySeconds: appConfig.DailyKpiSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.DailyKpiSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.DailyKpiSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"lookback_days":         syncConfig.LookbackDays,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de KPIs diários carregada")

	byPlatform := make(map[domain.Platform]DailyKpiFetcher, len(fetchers))
	for _, f := range fetchers {
		byPlatform[f.Platform()] = f
	}

	return &DailyKpiSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		appConfig:    appConfig,
		clientRepo:   clientRepo,
		dailyKpiRepo: dailyKpiRepo,
		fetchers:     byPlatform,
	}
}

// Start inicia o agendador
func (s *DailyKpiSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de KPIs diários desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de KPIs diários")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncDailyKpis(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de KPIs diários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de KPIs diários")
		s.scheduler.Stop()
	}()

	return nil
}

// syncDailyKpis sincroniza os KPIs diários de todos os clientes ativos
func (s *DailyKpiSyncService) syncDailyKpis(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de KPIs diários já em andamento, ignorando")
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

	logrus.Info("Iniciando sincronização de KPIs diários para todos os clientes ativos")

	clients, err := s.clientRepo.ListClients([]domain.ClientStatus{domain.ClientStatusActive})
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de clientes para sincronização de KPIs diários")
		return
	}

	if len(clients) == 0 {
		logrus.Info("Nenhum cliente ativo encontrado para sincronização de KPIs diários")
		return
	}

	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	startDate := endDate.AddDate(0, 0, -s.config.LookbackDays)

	logrus.WithFields(logrus.Fields{
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
		"clients":    len(clients),
	}).Info("Período para sincronização de KPIs diários")

	s.processClients(ctx, clients, startDate, endDate)

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration": duration.String(),
		"clients":  len(clients),
	}).Info("Sincronização de KPIs diários concluída")

	s.lastSyncCompletedAt = time.Now()
}

// processClients processa os clientes com concorrência limitada por semáforo
func (s *DailyKpiSyncService) processClients(ctx context.Context, clients []*domain.Client, startDate, endDate time.Time) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var wg sync.WaitGroup

	for _, client := range clients {
		wg.Add(1)
		semaphore <- struct{}{} // Adquirir semáforo

		go func(c *domain.Client) {
			defer func() {
				<-semaphore // Liberar semáforo
				wg.Done()
			}()

			logrus.WithFields(logrus.Fields{
				"client_id":   c.ID,
				"client_name": c.Name,
				"start_date":  startDate.Format(time.DateOnly),
				"end_date":    endDate.Format(time.DateOnly),
			}).Info("Processando KPIs diários para cliente")

			if c.HasMeta() {
				if err := s.syncClientPlatform(ctx, c, domain.PlatformMeta, *c.MetaAccountID, startDate, endDate); err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"client_id": c.ID,
						"platform":  domain.PlatformMeta,
					}).Error("Erro ao sincronizar KPIs diários do Meta")
				}
			}

			if c.HasGoogle() {
				if err := s.syncClientPlatform(ctx, c, domain.PlatformGoogle, *c.GoogleAccountID, startDate, endDate); err != nil {
					logrus.WithError(err).WithFields(logrus.Fields{
						"client_id": c.ID,
						"platform":  domain.PlatformGoogle,
					}).Error("Erro ao sincronizar KPIs diários do Google")
				}
			}

			// Aguardar antes do próximo cliente para evitar excesso de requisições
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}(client)
	}

	wg.Wait()
}

// syncClientPlatform busca e persiste os KPIs de um cliente em uma plataforma
func (s *DailyKpiSyncService) syncClientPlatform(ctx context.Context, client *domain.Client, platform domain.Platform, accountID string, startDate, endDate time.Time) error {
	fetcher, ok := s.fetchers[platform]
	if !ok {
		return fmt.Errorf("nenhum fetcher registrado para a plataforma %s", platform)
	}

	entries, err := fetcher.FetchDailyKpis(ctx, client.ID, accountID, startDate, endDate)
	if err != nil {
		return fmt.Errorf("erro ao buscar KPIs diários: %w", err)
	}

	saved := 0
	for _, entry := range entries {
		if err := s.dailyKpiRepo.SaveOrUpdate(entry); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"client_id": client.ID,
				"platform":  platform,
				"date":      entry.Date.Format(time.DateOnly),
			}).Error("Erro ao salvar KPI diário")
			continue
		}
		saved++
	}

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID,
		"platform":  platform,
		"fetched":   len(entries),
		"saved":     saved,
	}).Info("KPIs diários sincronizados para cliente e plataforma")

	return nil
}

// TriggerManualSync inicia manualmente uma sincronização de KPIs diários
func (s *DailyKpiSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de KPIs diários já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de KPIs diários")
	go s.syncDailyKpis(context.Background())
}

// GetStatus retorna o status atual da sincronização
func (s *DailyKpiSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
