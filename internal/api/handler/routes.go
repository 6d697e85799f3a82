package handler

import (
	"net/http"

	"github.com/wmarczak/reporting-api/internal/api/handler/router"
	"github.com/wmarczak/reporting-api/internal/usecases/aggregating"
	"github.com/wmarczak/reporting-api/internal/usecases/clients"
	"github.com/wmarczak/reporting-api/internal/usecases/reporting"
	"github.com/wmarczak/reporting-api/internal/usecases/smartcache"
	"github.com/wmarczak/reporting-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Clients(service clients.ClientService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients",
			Method:      http.MethodGet,
			Handler:     ClientList(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients",
			Method:      http.MethodPost,
			Handler:     CreateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/clients/:id",
			Method:      http.MethodPut,
			Handler:     UpdateClient(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Reports(reporter reporting.Reporter, aggregator aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients/:id/reports",
			Method:      http.MethodGet,
			Handler:     GetPeriodReport(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/reports/unified",
			Method:      http.MethodGet,
			Handler:     GetUnifiedReport(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/reports/consistency",
			Method:      http.MethodGet,
			Handler:     ValidateConsistency(aggregator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrService()},
		},
	}
}

func SmartCache(service smartcache.SmartCacher) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/clients/:id/smart-cache/month",
			Method:      http.MethodGet,
			Handler:     GetSmartCacheMonth(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/smart-cache/week",
			Method:      http.MethodGet,
			Handler:     GetSmartCacheWeek(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/smart-cache/unified",
			Method:      http.MethodGet,
			Handler:     GetSmartCacheUnified(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/clients/:id/smart-cache",
			Method:      http.MethodDelete,
			Handler:     InvalidateSmartCache(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrService()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrService()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrService()},
		},
	}
}
