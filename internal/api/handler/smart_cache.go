package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wmarczak/reporting-api/internal/domain"
	"github.com/wmarczak/reporting-api/internal/usecases/smartcache"
	"github.com/wmarczak/reporting-api/pkg/log"
)

// GetSmartCacheMonth retorna os dados do mês corrente servidos pelo smart cache
func GetSmartCacheMonth(service smartcache.SmartCacher) http.Handler {
	return smartCachePeriodHandler(service, domain.GranularityMonth)
}

// GetSmartCacheWeek retorna os dados da semana ISO corrente
func GetSmartCacheWeek(service smartcache.SmartCacher) http.Handler {
	return smartCachePeriodHandler(service, domain.GranularityWeek)
}

func smartCachePeriodHandler(service smartcache.SmartCacher, granularity domain.Granularity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		platform, err := parsePlatform(r.URL.Query().Get("platform"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		force := r.URL.Query().Get("force") == "true"

		logger.WithFields(log.Fields{
			"client_id":   clientID,
			"platform":    platform,
			"granularity": granularity,
			"force":       force,
		}).Info("smartcache: fetching current period data")

		var result *smartcache.CacheResult
		if granularity == domain.GranularityWeek {
			result, err = service.GetWeekData(r.Context(), clientID, platform, force)
		} else {
			result, err = service.GetMonthData(r.Context(), clientID, platform, force)
		}
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id": clientID,
				"platform":  platform,
				"error":     err.Error(),
			}).Error("smartcache: failed to fetch current period data")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		logger.WithFields(log.Fields{
			"client_id":  clientID,
			"platform":   platform,
			"source":     result.Source,
			"from_cache": result.FromCache,
		}).Info("smartcache: current period data resolved")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetSmartCacheUnified combina as duas plataformas do período corrente
func GetSmartCacheUnified(service smartcache.SmartCacher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		granularity, err := parseGranularity(r.URL.Query().Get("granularity"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		force := r.URL.Query().Get("force") == "true"

		unified, err := service.GetUnifiedData(r.Context(), clientID, granularity, force)
		if err != nil {
			logger.WithFields(log.Fields{
				"client_id":   clientID,
				"granularity": granularity,
				"error":       err.Error(),
			}).Error("smartcache: failed to fetch unified data")

			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(unified); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// InvalidateSmartCache remove as entradas do cliente do cache em memória
func InvalidateSmartCache(service smartcache.SmartCacher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		clientID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("client_id", clientID).Info("smartcache: invalidating client cache entries")

		service.InvalidateClient(clientID)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"message":   "Cache do cliente invalidado com sucesso",
			"client_id": clientID,
		})
	})
}
