package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/scheduler"
	"github.com/wmarczak/reporting-api/pkg/apiErrors"
	"github.com/wmarczak/reporting-api/pkg/middleware"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeDailyKpi         = "daily-kpi"
	CronJobTypePeriodTransition = "period-transition"
	CronJobTypeRetention        = "retention-cleanup"
	CronJobTypeAll              = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	DailyKpiSyncService     *scheduler.DailyKpiSyncService
	PeriodTransitionService *scheduler.PeriodTransitionService
	RetentionCleanupService *scheduler.RetentionCleanupService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Verificar permissões - apenas administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.Role != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		// Obter o tipo de cron job da URL
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		// Validar o tipo de cron job
		switch cronType {
		case CronJobTypeDailyKpi:
			if services.DailyKpiSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de KPIs diários não disponível", nil)
				return
			}
			services.DailyKpiSyncService.TriggerManualSync()

		case CronJobTypePeriodTransition:
			if services.PeriodTransitionService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de virada de período não disponível", nil)
				return
			}
			services.PeriodTransitionService.TriggerManualSync()

		case CronJobTypeRetention:
			if services.RetentionCleanupService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de retenção não disponível", nil)
				return
			}
			services.RetentionCleanupService.TriggerManualSync()

		case CronJobTypeAll:
			if services.DailyKpiSyncService != nil {
				services.DailyKpiSyncService.TriggerManualSync()
			}
			if services.PeriodTransitionService != nil {
				services.PeriodTransitionService.TriggerManualSync()
			}
			if services.RetentionCleanupService != nil {
				services.RetentionCleanupService.TriggerManualSync()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: daily-kpi, period-transition, retention-cleanup, all", nil)
			return
		}

		// Responder com sucesso
		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		// Verificar permissões - apenas administradores podem ver status das crons
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.Role != domain.RoleAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"daily-kpi":         services.DailyKpiSyncService.GetStatus(),
			"period-transition": services.PeriodTransitionService.GetStatus(),
			"retention-cleanup": services.RetentionCleanupService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
