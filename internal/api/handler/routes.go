package handler

import (
	"net/http"

	"github.com/phoouze/devplaza-analytics-api/internal/api/handler/router"
	"github.com/phoouze/devplaza-analytics-api/internal/usecases/reporting"
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

func Analytics(service reporting.Reporter, debug bool) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/analytics/reports",
			Method:  http.MethodPost,
			Handler: GenerateAnalyticsReport(service, debug),
		},
	}
}
