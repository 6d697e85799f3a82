package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/usecases/reporting"
)

// RetentionCleanupService aplica periodicamente a política de retenção sobre
// os KPIs diários e os resumos permanentes
type RetentionCleanupService struct {
	scheduler           *gocron.Scheduler
	appConfig           *config.Config
	reporter            reporting.Reporter
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *reporting.CleanupReport
}

// NewRetentionCleanupService cria uma nova instância do serviço de limpeza de retenção
func NewRetentionCleanupService(reporter reporting.Reporter, appConfig *config.Config) *RetentionCleanupService {
	scheduler := gocron.NewScheduler(time.UTC)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  appConfig.RetentionCleanup.CronSchedule,
		"sync_enabled":   appConfig.RetentionCleanup.Enabled,
		"daily_days":     appConfig.RetentionCleanup.DailyRetentionDays,
		"summary_months": appConfig.RetentionCleanup.SummaryRetentionMonths,
	}).Info("Configuração do agendador de limpeza de retenção carregada")

	return &RetentionCleanupService{
		scheduler: scheduler,
		appConfig: appConfig,
		reporter:  reporter,
	}
}

// Start inicia o agendador
func (s *RetentionCleanupService) Start(ctx context.Context) error {
	if !s.appConfig.RetentionCleanup.Enabled {
		logrus.Info("Limpeza de retenção desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.appConfig.RetentionCleanup.CronSchedule).Info("Iniciando agendador de limpeza de retenção")

	_, err := s.scheduler.Cron(s.appConfig.RetentionCleanup.CronSchedule).Do(func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de retenção")
		s.scheduler.Stop()
	}()

	return nil
}

// runCleanup executa uma rodada de limpeza de retenção
func (s *RetentionCleanupService) runCleanup() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de retenção já em andamento, ignorando")
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

	logrus.Info("Iniciando limpeza de retenção")

	report, err := s.reporter.CleanupOldData()
	if err != nil {
		logrus.WithError(err).Error("Erro ao executar limpeza de retenção")
		return
	}

	s.syncMutex.Lock()
	s.lastReport = report
	s.syncMutex.Unlock()

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":     duration.String(),
		"daily_rows":   report.DailyRowsDeleted,
		"summary_rows": report.SummaryRowsDeleted,
	}).Info("Limpeza de retenção concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma limpeza de retenção
func (s *RetentionCleanupService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Limpeza de retenção já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de retenção")
	go s.runCleanup()
}

// GetStatus retorna o status atual da limpeza
func (s *RetentionCleanupService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.appConfig.RetentionCleanup.CronSchedule,
		"sync_enabled":           s.appConfig.RetentionCleanup.Enabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastReport != nil {
		status["last_daily_rows_deleted"] = s.lastReport.DailyRowsDeleted
		status["last_summary_rows_deleted"] = s.lastReport.SummaryRowsDeleted
	}

	return status
}
