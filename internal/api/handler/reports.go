package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/usecases/aggregating"
	"github.com/wmarczak/reporting-api/internal/usecases/reporting"
	"github.com/wmarczak/reporting-api/pkg/log"
	"github.com/wmarczak/reporting-api/pkg/utils"
)

func parsePlatform(raw string) (domain.Platform, error) {
	switch domain.Platform(raw) {
	case domain.PlatformMeta:
		return domain.PlatformMeta, nil
	case domain.PlatformGoogle:
		return domain.PlatformGoogle, nil
	default:
		return "", fmt.Errorf("plataforma inválida %q: valores aceitos: meta, google", raw)
	}
}

func parseGranularity(raw string) (domain.Granularity, error) {
	switch raw {
	case "", string(domain.GranularityMonth):
		return domain.GranularityMonth, nil
	case string(domain.GranularityWeek):
		return domain.GranularityWeek, nil
	default:
		return "", fmt.Errorf("granularidade inválida %q: valores aceitos: monthly, weekly", raw)
	}
}

// GetPeriodReport resolve o relatório de uma plataforma no período que contém
// a data informada (ou hoje, quando omitida)
func GetPeriodReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("client_id", clientID).Info("reports: fetching period report")

		platform, err := parsePlatform(r.URL.Query().Get("platform"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		granularity, err := parseGranularity(r.URL.Query().Get("granularity"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		date := time.Now().UTC()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				logger.WithFields(log.Fields{
					"client_id": clientID,
					"date":      raw,
					"error":     err.Error(),
				}).Warn("reports: invalid date parameter")

				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			date = *parsed
		}

		force := r.URL.Query().Get("force") == "true"

		report, err := service.GetPeriodReport(r.Context(), clientID, platform, granularity, date, force)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id":   clientID,
				"platform":    platform,
				"granularity": granularity,
				"error":       err.Error(),
			}).Error("reports: failed to resolve period report")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		logger.WithFields(log.Fields{
			"client_id":   clientID,
			"platform":    platform,
			"period_id":   report.PeriodID,
			"data_source": report.DataSource,
		}).Info("reports: period report resolved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithFields(log.Fields{
				"client_id": clientID,
				"error":     err.Error(),
			}).Error("reports: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetUnifiedReport combina Meta e Google no mesmo período
func GetUnifiedReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("client_id", clientID).Info("reports: fetching unified report")

		granularity, err := parseGranularity(r.URL.Query().Get("granularity"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		date := time.Now().UTC()
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := utils.ParseDate(raw)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			date = *parsed
		}

		force := r.URL.Query().Get("force") == "true"

		unified, err := service.GetUnifiedReport(r.Context(), clientID, granularity, date, force)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id":   clientID,
				"granularity": granularity,
				"error":       err.Error(),
			}).Error("reports: failed to resolve unified report")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(unified); err != nil {
			logger.WithFields(log.Fields{
				"client_id": clientID,
				"error":     err.Error(),
			}).Error("reports: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// ValidateConsistency confere a agregação de um intervalo contra a soma
// independente do banco
func ValidateConsistency(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("client_id", clientID).Info("reports: validating aggregation consistency")

		platform, err := parsePlatform(r.URL.Query().Get("platform"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		report, err := service.ValidateConsistency(clientID, platform, *startDate, *endDate)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id": clientID,
				"platform":  platform,
				"error":     err.Error(),
			}).Error("reports: failed to validate consistency")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
