package google

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	gadomain "github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/domain"
	"github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/gaclient"
	"github.com/phoouze/devplaza-analytics-api/internal/config"
	"github.com/phoouze/devplaza-analytics-api/internal/domain"
	"github.com/phoouze/devplaza-analytics-api/pkg/settle"
)

// ErrBothProvidersFailed indica que o GA4 e a contingência legada falharam
// na mesma invocação; não há mais de onde buscar dados.
var ErrBothProvidersFailed = errors.New("provedores de analytics indisponíveis")

// TokenSource fornece um bearer token válido para as chamadas de relatório
type TokenSource interface {
	AccessToken() (string, error)
}

// AnalyticsIntegrator é a interface consumida pelo caso de uso de relatórios
type AnalyticsIntegrator interface {
	// FetchReport busca o relatório no provedor primário com contingência
	// automática, e devolve o modelo canônico com a origem preenchida
	FetchReport(query *domain.ReportQuery) (*domain.AnalyticsReport, error)
}

type GoogleIntegrator struct {
	cfg    *config.Config
	Client gaclient.Client
	tokens TokenSource
}

func New(cfg *config.Config, client gaclient.Client, tokens TokenSource) *GoogleIntegrator {
	return &GoogleIntegrator{
		cfg:    cfg,
		Client: client,
		tokens: tokens,
	}
}

// FetchReport executa a sequência completa: token, primário, contingência e
// buscas complementares. Primário e contingência são estritamente
// sequenciais: a contingência só entra depois do primário confirmado como
// falho, nunca em corrida.
func (s *GoogleIntegrator) FetchReport(query *domain.ReportQuery) (*domain.AnalyticsReport, error) {
	token, err := s.tokens.AccessToken()
	if err != nil {
		return nil, err
	}

	report, ga4Err := s.fetchPrimary(query, token)
	if ga4Err == nil {
		s.attachSupplementary(query, token, report)
		report.Source = domain.SourceGA4
		return report, nil
	}

	logrus.WithError(ga4Err).Warn("API GA4 falhou; tentando contingência legada")

	report, uaErr := s.fetchFallback(query, token)
	if uaErr == nil {
		report.Source = domain.SourceUA
		return report, nil
	}

	logrus.WithError(uaErr).Warn("API legada também falhou")

	// Rejeição de credencial (401/403) prevalece sobre a indisponibilidade
	// genérica, para que o status do provedor seja repassado sem alteração
	var apiErr *gadomain.APIError
	if errors.As(ga4Err, &apiErr) && apiErr.IsAuthDenied() {
		return nil, ga4Err
	}
	if errors.As(uaErr, &apiErr) && apiErr.IsAuthDenied() {
		return nil, uaErr
	}

	return nil, fmt.Errorf("%w: ga4: %v; ua: %v", ErrBothProvidersFailed, ga4Err, uaErr)
}

// fetchPrimary consulta o GA4 com as métricas do chamador ou o conjunto
// padrão de sete métricas diárias
func (s *GoogleIntegrator) fetchPrimary(query *domain.ReportQuery, token string) (*domain.AnalyticsReport, error) {
	body := &gadomain.RunReportRequest{
		DateRanges: []gadomain.DateRange{{StartDate: query.StartDate, EndDate: query.EndDate}},
		Metrics:    defaultMetrics,
		Dimensions: defaultDimensions,
		OrderBys: []gadomain.OrderBy{
			{Dimension: &gadomain.DimensionOrderBy{DimensionName: "date"}},
		},
		Limit: 1000,
	}

	if len(query.Metrics) > 0 {
		body.Metrics = make([]gadomain.Metric, 0, len(query.Metrics))
		for _, name := range query.Metrics {
			body.Metrics = append(body.Metrics, gadomain.Metric{Name: name})
		}
	}

	if len(query.Dimensions) > 0 {
		body.Dimensions = make([]gadomain.Dimension, 0, len(query.Dimensions))
		for _, name := range query.Dimensions {
			body.Dimensions = append(body.Dimensions, gadomain.Dimension{Name: name})
		}
	}

	resp, err := s.Client.RunReport(query.PropertyID, body, token)
	if err != nil {
		return nil, err
	}

	return normalizeRunReport(resp)
}

// fetchFallback consulta o Universal Analytics com o conjunto legado de seis
// expressões de métrica. O provedor legado não tem métrica de eventos; o
// normalizador preenche events com zero.
func (s *GoogleIntegrator) fetchFallback(query *domain.ReportQuery, token string) (*domain.AnalyticsReport, error) {
	body := &gadomain.BatchGetRequest{
		ReportRequests: []gadomain.ReportRequest{
			{
				ViewID:     query.PropertyID,
				DateRanges: []gadomain.DateRange{{StartDate: query.StartDate, EndDate: query.EndDate}},
				Metrics: []gadomain.MetricExpression{
					{Expression: "ga:pageviews"},
					{Expression: "ga:users"},
					{Expression: "ga:sessions"},
					{Expression: "ga:bounceRate"},
					{Expression: "ga:avgSessionDuration"},
					{Expression: "ga:newUsers"},
				},
				Dimensions: []gadomain.Dimension{{Name: "ga:date"}},
			},
		},
	}

	resp, err := s.Client.BatchGet(body, token)
	if err != nil {
		return nil, err
	}

	return normalizeBatchGet(resp)
}

// attachSupplementary dispara as buscas complementares em paralelo e as
// junta ao relatório. Cada ramo é melhor-esforço: a falha de um deles vira
// campo ausente, nunca erro da requisição.
func (s *GoogleIntegrator) attachSupplementary(query *domain.ReportQuery, token string, report *domain.AnalyticsReport) {
	topPagesTask := settle.Go(func() ([]domain.TopPage, error) {
		return s.fetchTopPages(query, token)
	})
	demographicsTask := settle.Go(func() (*domain.Demographics, error) {
		return s.fetchDemographics(query, token)
	})

	if result := topPagesTask.Await(); result.Ok() {
		report.TopPages = result.Value
	} else {
		logrus.WithError(result.Err).Warn("Busca de top páginas falhou; campo omitido")
	}

	if result := demographicsTask.Await(); result.Ok() {
		report.Demographics = result.Value
	} else {
		logrus.WithError(result.Err).Warn("Busca de dados demográficos falhou; campo omitido")
	}
}

// fetchTopPages busca as dez páginas mais vistas do período
func (s *GoogleIntegrator) fetchTopPages(query *domain.ReportQuery, token string) ([]domain.TopPage, error) {
	body := &gadomain.RunReportRequest{
		DateRanges: []gadomain.DateRange{{StartDate: query.StartDate, EndDate: query.EndDate}},
		Metrics:    []gadomain.Metric{{Name: "screenPageViews"}},
		Dimensions: []gadomain.Dimension{{Name: "pagePath"}},
		OrderBys: []gadomain.OrderBy{
			{Metric: &gadomain.MetricOrderBy{MetricName: "screenPageViews"}, Desc: true},
		},
		Limit: 10,
	}

	resp, err := s.Client.RunReport(query.PropertyID, body, token)
	if err != nil {
		return nil, err
	}

	return normalizeTopPages(resp), nil
}

// fetchDemographics busca os recortes de países e dispositivos em paralelo.
// Um provedor que responde não-2xx em um dos ramos resulta em lista vazia
// naquele ramo; erro de transporte derruba o campo inteiro (que o chamador
// absorve como ausente).
func (s *GoogleIntegrator) fetchDemographics(query *domain.ReportQuery, token string) (*domain.Demographics, error) {
	dateRanges := []gadomain.DateRange{{StartDate: query.StartDate, EndDate: query.EndDate}}

	countriesTask := settle.Go(func() (*gadomain.RunReportResponse, error) {
		return s.Client.RunReport(query.PropertyID, &gadomain.RunReportRequest{
			DateRanges: dateRanges,
			Metrics:    []gadomain.Metric{{Name: "totalUsers"}},
			Dimensions: []gadomain.Dimension{{Name: "country"}},
			OrderBys: []gadomain.OrderBy{
				{Metric: &gadomain.MetricOrderBy{MetricName: "totalUsers"}, Desc: true},
			},
			Limit: 10,
		}, token)
	})

	devicesTask := settle.Go(func() (*gadomain.RunReportResponse, error) {
		return s.Client.RunReport(query.PropertyID, &gadomain.RunReportRequest{
			DateRanges: dateRanges,
			Metrics:    []gadomain.Metric{{Name: "sessions"}},
			Dimensions: []gadomain.Dimension{{Name: "deviceCategory"}},
			OrderBys: []gadomain.OrderBy{
				{Metric: &gadomain.MetricOrderBy{MetricName: "sessions"}, Desc: true},
			},
			Limit: 10,
		}, token)
	})

	countriesResult := countriesTask.Await()
	devicesResult := devicesTask.Await()

	var apiErr *gadomain.APIError
	if countriesResult.Err != nil && !errors.As(countriesResult.Err, &apiErr) {
		return nil, countriesResult.Err
	}
	if devicesResult.Err != nil && !errors.As(devicesResult.Err, &apiErr) {
		return nil, devicesResult.Err
	}

	demographics := &domain.Demographics{
		Countries: []domain.CountryBreakdown{},
		Devices:   []domain.DeviceBreakdown{},
	}

	if countriesResult.Ok() {
		demographics.Countries = normalizeCountries(countriesResult.Value)
	}
	if devicesResult.Ok() {
		demographics.Devices = normalizeDevices(devicesResult.Value)
	}

	return demographics, nil
}
