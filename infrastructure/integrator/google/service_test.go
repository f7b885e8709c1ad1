package google

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	gadomain "github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/domain"
	"github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/mocks"
	"github.com/phoouze/devplaza-analytics-api/internal/config"
	"github.com/phoouze/devplaza-analytics-api/internal/domain"
	"github.com/phoouze/devplaza-analytics-api/pkg/log"
)

type tokenSourceStub struct {
	token string
	err   error
}

func (t *tokenSourceStub) AccessToken() (string, error) {
	return t.token, t.err
}

func testQuery() *domain.ReportQuery {
	return &domain.ReportQuery{
		PropertyID: "12345678",
		StartDate:  "7daysAgo",
		EndDate:    "today",
	}
}

func dailyResponse() *gadomain.RunReportResponse {
	return &gadomain.RunReportResponse{
		Rows: []gadomain.RunReportRow{
			{
				DimensionValues: []gadomain.RunReportValue{{Value: "20240601"}},
				MetricValues: []gadomain.RunReportValue{
					{Value: "100"}, {Value: "40"}, {Value: "55"},
					{Value: "48.5"}, {Value: "130.2"}, {Value: "25"}, {Value: "300"},
				},
			},
		},
	}
}

func breakdownResponse(dimension, value string) *gadomain.RunReportResponse {
	return &gadomain.RunReportResponse{
		Rows: []gadomain.RunReportRow{
			{
				DimensionValues: []gadomain.RunReportValue{{Value: dimension}},
				MetricValues:    []gadomain.RunReportValue{{Value: value}},
			},
		},
	}
}

func uaResponse() *gadomain.BatchGetResponse {
	return &gadomain.BatchGetResponse{
		Reports: []gadomain.Report{
			{
				Data: gadomain.ReportData{
					Rows: []gadomain.ReportRow{
						{
							Dimensions: []string{"20240601"},
							Metrics:    []gadomain.ReportMetric{{Values: []string{"90", "35", "50", "52.0", "110.0", "20"}}},
						},
					},
				},
			},
		},
	}
}

// routeRunReport devolve a resposta certa conforme a dimensão pedida,
// cobrindo o caminho primário e as buscas complementares numa expectativa só
func routeRunReport(primaryErr error, topPagesErr error, demographicsErr error) func(string, *gadomain.RunReportRequest, string) (*gadomain.RunReportResponse, error) {
	return func(propertyID string, body *gadomain.RunReportRequest, accessToken string) (*gadomain.RunReportResponse, error) {
		switch body.Dimensions[0].Name {
		case "pagePath":
			if topPagesErr != nil {
				return nil, topPagesErr
			}
			return breakdownResponse("/home", "300"), nil
		case "country":
			if demographicsErr != nil {
				return nil, demographicsErr
			}
			return breakdownResponse("Brazil", "150"), nil
		case "deviceCategory":
			if demographicsErr != nil {
				return nil, demographicsErr
			}
			return breakdownResponse("mobile", "80"), nil
		default:
			if primaryErr != nil {
				return nil, primaryErr
			}
			return dailyResponse(), nil
		}
	}
}

func TestFetchReportPrimarySuccess(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		DoAndReturn(routeRunReport(nil, nil, nil)).
		Times(4)

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	report, err := integrator.FetchReport(testQuery())
	require.NoError(t, err)

	assert.Equal(t, domain.SourceGA4, report.Source)
	assert.Equal(t, 100, report.Overview.PageViews)

	require.Len(t, report.TopPages, 1)
	assert.Equal(t, "/home", report.TopPages[0].Page)

	require.NotNil(t, report.Demographics)
	require.Len(t, report.Demographics.Countries, 1)
	assert.Equal(t, "Brazil", report.Demographics.Countries[0].Country)
	require.Len(t, report.Demographics.Devices, 1)
	assert.Equal(t, "mobile", report.Demographics.Devices[0].Device)
}

func TestFetchReportFallbackToLegacy(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	primaryErr := &gadomain.APIError{Provider: "ga4", StatusCode: 500, Body: "internal"}

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		Return(nil, primaryErr)
	client.EXPECT().
		BatchGet(gomock.Any(), "token-abc").
		Return(uaResponse(), nil)

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	report, err := integrator.FetchReport(testQuery())
	require.NoError(t, err)

	// A contingência legada nunca traz buscas complementares
	assert.Equal(t, domain.SourceUA, report.Source)
	assert.Equal(t, 90, report.Overview.PageViews)
	assert.Equal(t, 0, report.Overview.Events)
	assert.Nil(t, report.TopPages)
	assert.Nil(t, report.Demographics)
}

func TestFetchReportSupplementaryFailSoft(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	topPagesErr := &gadomain.APIError{Provider: "ga4", StatusCode: 429, Body: "quota"}

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		DoAndReturn(routeRunReport(nil, topPagesErr, nil)).
		Times(4)

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	report, err := integrator.FetchReport(testQuery())
	require.NoError(t, err)

	// A falha da busca complementar degrada para campo ausente
	assert.Equal(t, domain.SourceGA4, report.Source)
	assert.Nil(t, report.TopPages)
	assert.NotNil(t, report.Demographics)
}

func TestFetchReportDemographicsPartialDegrade(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	demographicsErr := &gadomain.APIError{Provider: "ga4", StatusCode: 500, Body: "boom"}

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		DoAndReturn(routeRunReport(nil, nil, demographicsErr)).
		Times(4)

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	report, err := integrator.FetchReport(testQuery())
	require.NoError(t, err)

	// Erro de API nos ramos demográficos vira lista vazia, não campo ausente
	require.NotNil(t, report.Demographics)
	assert.Empty(t, report.Demographics.Countries)
	assert.Empty(t, report.Demographics.Devices)
}

func TestFetchReportAllSupplementaryUnavailable(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	transportErr := errors.New("connection reset by peer")

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		DoAndReturn(routeRunReport(nil, transportErr, transportErr)).
		Times(4)

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	report, err := integrator.FetchReport(testQuery())
	require.NoError(t, err)

	// Todas as buscas complementares caindo não derruba o relatório diário
	assert.Equal(t, domain.SourceGA4, report.Source)
	assert.Equal(t, 100, report.Overview.PageViews)
	assert.Nil(t, report.TopPages)
	assert.Nil(t, report.Demographics)
}

func TestFetchReportBothProvidersFail(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		Return(nil, &gadomain.APIError{Provider: "ga4", StatusCode: 500, Body: "down"})
	client.EXPECT().
		BatchGet(gomock.Any(), "token-abc").
		Return(nil, &gadomain.APIError{Provider: "ua", StatusCode: 503, Body: "down"})

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	_, err := integrator.FetchReport(testQuery())
	assert.ErrorIs(t, err, ErrBothProvidersFailed)
}

func TestFetchReportAuthDeniedPassthrough(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	deniedErr := &gadomain.APIError{Provider: "ga4", StatusCode: 403, Body: "forbidden"}

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		Return(nil, deniedErr)
	client.EXPECT().
		BatchGet(gomock.Any(), "token-abc").
		Return(nil, &gadomain.APIError{Provider: "ua", StatusCode: 500, Body: "down"})

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	_, err := integrator.FetchReport(testQuery())
	require.Error(t, err)

	// A rejeição 403 prevalece sobre a indisponibilidade genérica
	var apiErr *gadomain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestFetchReportTokenFailureShortCircuits(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	// Nenhuma expectativa registrada: falha de token não chega ao cliente
	client := mocks.NewMockClient(ctrl)

	tokenErr := errors.New("troca de token recusada")
	integrator := New(&config.Config{}, client, &tokenSourceStub{err: tokenErr})

	_, err := integrator.FetchReport(testQuery())
	assert.ErrorIs(t, err, tokenErr)
}

func TestFetchReportCustomMetricsForwarded(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	query := testQuery()
	query.Metrics = []string{"activeUsers", "conversions"}
	query.Dimensions = []string{"date"}

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		RunReport("12345678", gomock.Any(), "token-abc").
		DoAndReturn(func(propertyID string, body *gadomain.RunReportRequest, accessToken string) (*gadomain.RunReportResponse, error) {
			if body.Dimensions[0].Name == "date" && len(body.Metrics) == 2 {
				assert.Equal(t, "activeUsers", body.Metrics[0].Name)
				assert.Equal(t, "conversions", body.Metrics[1].Name)
				return dailyResponse(), nil
			}
			return breakdownResponse("x", "1"), nil
		}).
		Times(4)

	integrator := New(&config.Config{}, client, &tokenSourceStub{token: "token-abc"})

	_, err := integrator.FetchReport(query)
	require.NoError(t, err)
}
