package google

import (
	"errors"
	"strconv"

	gadomain "github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/domain"
	"github.com/phoouze/devplaza-analytics-api/internal/domain"
)

// Conjunto padrão de métricas diárias do GA4, na ordem em que o normalizador
// as lê de cada linha
var defaultMetrics = []gadomain.Metric{
	{Name: "screenPageViews"},
	{Name: "totalUsers"},
	{Name: "sessions"},
	{Name: "bounceRate"},
	{Name: "averageSessionDuration"},
	{Name: "newUsers"},
	{Name: "eventCount"},
}

var defaultDimensions = []gadomain.Dimension{{Name: "date"}}

// Erros de forma: quando a resposta do provedor não traz a estrutura de
// linhas esperada, o normalizador falha alto em vez de devolver zeros.
var (
	errUnexpectedGA4Shape = errors.New("resposta GA4 sem a forma de linhas esperada")
	errUnexpectedUAShape  = errors.New("resposta Universal Analytics sem a forma de relatório esperada")
)

// normalizeRunReport converte a resposta orientada a linhas do GA4 no modelo
// canônico. Os totais somam os valores diários; bounceRate e
// avgSessionDuration são a média das médias diárias (aproximação de
// dashboard, não média ponderada do período). ReturningUsers pode ficar
// negativo; o valor é repassado sem truncar.
func normalizeRunReport(resp *gadomain.RunReportResponse) (*domain.AnalyticsReport, error) {
	if resp == nil {
		return nil, errUnexpectedGA4Shape
	}

	overview := domain.AnalyticsOverview{}
	trend := make([]domain.TrendPoint, 0, len(resp.Rows))

	for _, row := range resp.Rows {
		if len(row.DimensionValues) < 1 || len(row.MetricValues) < 7 {
			return nil, errUnexpectedGA4Shape
		}

		pageViews := metricInt(row.MetricValues[0].Value)
		users := metricInt(row.MetricValues[1].Value)
		sessions := metricInt(row.MetricValues[2].Value)
		bounceRate := metricFloat(row.MetricValues[3].Value)
		avgSessionDuration := metricFloat(row.MetricValues[4].Value)
		newUsers := metricInt(row.MetricValues[5].Value)
		events := metricInt(row.MetricValues[6].Value)

		overview.PageViews += pageViews
		overview.Users += users
		overview.Sessions += sessions
		overview.BounceRate += bounceRate
		overview.AvgSessionDuration += avgSessionDuration
		overview.NewUsers += newUsers
		overview.Events += events

		trend = append(trend, domain.TrendPoint{
			Date:      normalizeEightDigitDate(row.DimensionValues[0].Value),
			PageViews: pageViews,
			Users:     users,
			Sessions:  sessions,
			Events:    events,
		})
	}

	finishOverview(&overview, len(resp.Rows))

	return &domain.AnalyticsReport{Overview: overview, Trend: trend}, nil
}

// normalizeBatchGet converte a resposta aninhada do Universal Analytics no
// modelo canônico. O provedor legado não reporta eventos: o campo fica em
// zero tanto no overview quanto na tendência.
func normalizeBatchGet(resp *gadomain.BatchGetResponse) (*domain.AnalyticsReport, error) {
	if resp == nil || len(resp.Reports) == 0 {
		return nil, errUnexpectedUAShape
	}

	rows := resp.Reports[0].Data.Rows
	overview := domain.AnalyticsOverview{}
	trend := make([]domain.TrendPoint, 0, len(rows))

	for _, row := range rows {
		if len(row.Dimensions) < 1 || len(row.Metrics) < 1 || len(row.Metrics[0].Values) < 6 {
			return nil, errUnexpectedUAShape
		}

		values := row.Metrics[0].Values
		pageViews := metricInt(values[0])
		users := metricInt(values[1])
		sessions := metricInt(values[2])

		overview.PageViews += pageViews
		overview.Users += users
		overview.Sessions += sessions
		overview.BounceRate += metricFloat(values[3])
		overview.AvgSessionDuration += metricFloat(values[4])
		overview.NewUsers += metricInt(values[5])

		trend = append(trend, domain.TrendPoint{
			Date:      normalizeEightDigitDate(row.Dimensions[0]),
			PageViews: pageViews,
			Users:     users,
			Sessions:  sessions,
			Events:    0,
		})
	}

	finishOverview(&overview, len(rows))

	return &domain.AnalyticsReport{Overview: overview, Trend: trend}, nil
}

// normalizeTopPages mapeia as linhas pagePath × screenPageViews. Linhas com
// forma inesperada são descartadas: a busca é melhor-esforço por contrato.
func normalizeTopPages(resp *gadomain.RunReportResponse) []domain.TopPage {
	if resp == nil || len(resp.Rows) == 0 {
		return nil
	}

	pages := make([]domain.TopPage, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		if len(row.DimensionValues) < 1 || len(row.MetricValues) < 1 {
			continue
		}
		pages = append(pages, domain.TopPage{
			Page:      row.DimensionValues[0].Value,
			PageViews: metricInt(row.MetricValues[0].Value),
		})
	}

	return pages
}

func normalizeCountries(resp *gadomain.RunReportResponse) []domain.CountryBreakdown {
	countries := []domain.CountryBreakdown{}
	if resp == nil {
		return countries
	}

	for _, row := range resp.Rows {
		if len(row.DimensionValues) < 1 || len(row.MetricValues) < 1 {
			continue
		}
		countries = append(countries, domain.CountryBreakdown{
			Country: row.DimensionValues[0].Value,
			Users:   metricInt(row.MetricValues[0].Value),
		})
	}

	return countries
}

func normalizeDevices(resp *gadomain.RunReportResponse) []domain.DeviceBreakdown {
	devices := []domain.DeviceBreakdown{}
	if resp == nil {
		return devices
	}

	for _, row := range resp.Rows {
		if len(row.DimensionValues) < 1 || len(row.MetricValues) < 1 {
			continue
		}
		devices = append(devices, domain.DeviceBreakdown{
			Device:   row.DimensionValues[0].Value,
			Sessions: metricInt(row.MetricValues[0].Value),
		})
	}

	return devices
}

// finishOverview fecha as médias diárias e calcula os usuários recorrentes
func finishOverview(overview *domain.AnalyticsOverview, dayCount int) {
	if dayCount == 0 {
		dayCount = 1
	}

	overview.BounceRate /= float64(dayCount)
	overview.AvgSessionDuration /= float64(dayCount)
	overview.ReturningUsers = overview.Users - overview.NewUsers
}

// normalizeEightDigitDate converte YYYYMMDD em YYYY-MM-DD por fatiamento de
// posição fixa; qualquer outro tamanho passa inalterado
func normalizeEightDigitDate(date string) string {
	if len(date) != 8 {
		return date
	}
	return date[0:4] + "-" + date[4:6] + "-" + date[6:8]
}

func metricInt(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func metricFloat(value string) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}
