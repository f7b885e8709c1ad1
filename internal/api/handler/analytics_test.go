package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoouze/devplaza-analytics-api/internal/api/handler/router"
	"github.com/phoouze/devplaza-analytics-api/internal/domain"
	"github.com/phoouze/devplaza-analytics-api/internal/usecases/reporting"
	"github.com/phoouze/devplaza-analytics-api/pkg/apiErrors"
	"github.com/phoouze/devplaza-analytics-api/pkg/log"
)

type reporterStub struct {
	lastBody []byte
	report   *domain.AnalyticsReport
	err      error
}

func (r *reporterStub) GenerateReport(body []byte) (*domain.AnalyticsReport, error) {
	r.lastBody = body
	if r.err != nil {
		return nil, r.err
	}
	return r.report, nil
}

func analyticsRouter(service reporting.Reporter, debug bool) http.Handler {
	return router.New(
		router.WithRoutes(Analytics(service, debug)...),
	)
}

func TestGenerateAnalyticsReportSuccess(t *testing.T) {
	log.SetupTestLogger()

	service := &reporterStub{
		report: &domain.AnalyticsReport{
			Overview: domain.AnalyticsOverview{PageViews: 100, Users: 40},
			Trend:    []domain.TrendPoint{{Date: "2024-06-01", PageViews: 100}},
			Source:   domain.SourceGA4,
		},
	}

	request := httptest.NewRequest(http.MethodPost, "/v1/analytics/reports", strings.NewReader(`{"propertyId": "12345678"}`))
	recorder := httptest.NewRecorder()

	analyticsRouter(service, false).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"propertyId": "12345678"}`, string(service.lastBody))

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, true, response["success"])
	assert.Equal(t, "ga4", response["source"])

	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok)
	overview, ok := data["overview"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(100), overview["pageViews"])

	// Campos complementares ausentes ficam de fora do JSON
	assert.NotContains(t, data, "topPages")
	assert.NotContains(t, data, "demographics")
}

func TestGenerateAnalyticsReportMethodNotAllowed(t *testing.T) {
	log.SetupTestLogger()

	service := &reporterStub{report: &domain.AnalyticsReport{}}

	request := httptest.NewRequest(http.MethodGet, "/v1/analytics/reports", nil)
	recorder := httptest.NewRecorder()

	analyticsRouter(service, false).ServeHTTP(recorder, request)

	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	var response apiErrors.APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, apiErrors.ErrMethodNotAllowed, response.Code)
	assert.Nil(t, service.lastBody, "nenhum corpo deve chegar ao serviço")
}

func TestGenerateAnalyticsReportErrorEnvelopes(t *testing.T) {
	log.SetupTestLogger()

	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "erro de validação devolve a mensagem específica",
			err:         reporting.NewReportError(reporting.ErrInvalidPropertyID, apiErrors.ErrInvalidFormat),
			wantStatus:  http.StatusBadRequest,
			wantCode:    apiErrors.ErrInvalidFormat,
			wantMessage: "formato de property ID inválido",
		},
		{
			name:        "erro de configuração devolve mensagem genérica",
			err:         reporting.NewReportError(reporting.ErrCredentialNotConfigured, apiErrors.ErrMissingCredential),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apiErrors.ErrMissingCredential,
			wantMessage: "Serviço de analytics não configurado",
		},
		{
			name:        "esgotamento dos provedores vira bad gateway",
			err:         reporting.NewReportError(errors.New("provedores indisponíveis"), apiErrors.ErrUpstreamUnavailable),
			wantStatus:  http.StatusBadGateway,
			wantCode:    apiErrors.ErrUpstreamUnavailable,
			wantMessage: "Dados de analytics indisponíveis no momento",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := &reporterStub{err: tc.err}

			request := httptest.NewRequest(http.MethodPost, "/v1/analytics/reports", strings.NewReader(`{}`))
			recorder := httptest.NewRecorder()

			analyticsRouter(service, false).ServeHTTP(recorder, request)

			require.Equal(t, tc.wantStatus, recorder.Code)

			var response apiErrors.APIError
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tc.wantCode, response.Code)
			assert.Equal(t, tc.wantMessage, response.Error)
		})
	}
}

func TestGenerateAnalyticsReportUpstreamStatusPassthrough(t *testing.T) {
	log.SetupTestLogger()

	reportErr := reporting.NewReportError(errors.New("provedores indisponíveis"), apiErrors.ErrProviderDenied)
	reportErr.UpstreamStatus = http.StatusUnauthorized

	service := &reporterStub{err: reportErr}

	request := httptest.NewRequest(http.MethodPost, "/v1/analytics/reports", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()

	analyticsRouter(service, false).ServeHTTP(recorder, request)

	// O 401 do provedor atravessa sem virar o 403 padrão do código
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var response apiErrors.APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, apiErrors.ErrProviderDenied, response.Code)
}

func TestGenerateAnalyticsReportDebugExposesSanitizedDetail(t *testing.T) {
	log.SetupTestLogger()

	baseErr := errors.New("falha no caminho /etc/passwd do host 10.0.0.1")
	service := &reporterStub{err: reporting.NewReportError(baseErr, apiErrors.ErrInternalServer)}

	request := httptest.NewRequest(http.MethodPost, "/v1/analytics/reports", strings.NewReader(`{}`))
	recorder := httptest.NewRecorder()

	analyticsRouter(service, true).ServeHTTP(recorder, request)

	var response apiErrors.APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	// Mesmo em debug, caminhos e IPs saem redigidos
	assert.Contains(t, response.Error, "[PATH_REMOVED]")
	assert.Contains(t, response.Error, "[IP_REMOVED]")
	assert.NotContains(t, response.Error, "/etc/passwd")
	assert.NotContains(t, response.Error, "10.0.0.1")
}
