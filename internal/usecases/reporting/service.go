package reporting

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google"
	gadomain "github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/domain"
	"github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/gaclient"
	"github.com/phoouze/devplaza-analytics-api/internal/config"
	"github.com/phoouze/devplaza-analytics-api/internal/domain"
	"github.com/phoouze/devplaza-analytics-api/pkg/apiErrors"
)

const (
	defaultStartDate = "7daysAgo"
	defaultEndDate   = "today"
)

type ReportingService struct {
	cfg     *config.Config
	fetcher AnalyticsFetcher
}

func NewService(cfg *config.Config, fetcher AnalyticsFetcher) *ReportingService {
	return &ReportingService{
		cfg:     cfg,
		fetcher: fetcher,
	}
}

// GenerateReport valida o corpo, monta a consulta efetiva e busca o
// relatório. Toda validação acontece antes de qualquer chamada externa.
func (s *ReportingService) GenerateReport(body []byte) (*domain.AnalyticsReport, error) {
	request, err := ParseRequest(body)
	if err != nil {
		return nil, err
	}

	query, err := s.buildQuery(request)
	if err != nil {
		return nil, err
	}

	// Checagem de credencial antes de qualquer ida à rede: ausência de
	// configuração é erro do gateway, não do provedor
	if s.cfg.Google.ServiceAccountKey == "" {
		return nil, NewReportError(ErrCredentialNotConfigured, apiErrors.ErrMissingCredential)
	}

	logrus.WithFields(logrus.Fields{
		"property_id": query.PropertyID,
		"start_date":  query.StartDate,
		"end_date":    query.EndDate,
	}).Info("Gerando relatório de analytics")

	report, err := s.fetcher.FetchReport(query)
	if err != nil {
		return nil, classifyFetchError(err)
	}

	return report, nil
}

// buildQuery aplica os padrões de período e resolve aliases "G-" para o
// identificador numérico configurado
func (s *ReportingService) buildQuery(request *domain.ReportRequest) (*domain.ReportQuery, error) {
	query := &domain.ReportQuery{
		PropertyID: request.PropertyID,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		Metrics:    request.Metrics,
		Dimensions: request.Dimensions,
	}

	if query.StartDate == "" {
		query.StartDate = defaultStartDate
	}
	if query.EndDate == "" {
		query.EndDate = defaultEndDate
	}

	if query.PropertyID == "" {
		query.PropertyID = s.cfg.Google.DefaultPropertyID
	}
	if query.PropertyID == "" {
		query.PropertyID = s.cfg.Google.PropertyID
	}
	if query.PropertyID == "" {
		return nil, NewReportError(ErrNoPropertyID, apiErrors.ErrMissingProperty)
	}

	if IsAliasPropertyID(query.PropertyID) {
		resolved, err := s.resolveAlias(query.PropertyID)
		if err != nil {
			return nil, err
		}
		query.PropertyID = resolved
	}

	// O ID efetivo passa pela mesma checagem de forma dos IDs vindos da
	// requisição. Um valor da requisição já validado nunca reprova aqui,
	// então a falha denuncia configuração ruim, não entrada do cliente.
	if !numericPropertyPattern.MatchString(query.PropertyID) {
		logrus.WithField("property_id", query.PropertyID).Error("Property ID resolvido fora do formato numérico esperado")
		return nil, NewReportError(ErrConfiguredPropertyBad, apiErrors.ErrMissingProperty)
	}

	return query, nil
}

// resolveAlias troca um measurement ID (G-) pelo property ID numérico do
// GA4 ou, na falta dele, pelo view ID do Universal Analytics
func (s *ReportingService) resolveAlias(alias string) (string, error) {
	if s.cfg.Google.PropertyID != "" {
		return s.cfg.Google.PropertyID, nil
	}
	if s.cfg.Google.ViewID != "" {
		return s.cfg.Google.ViewID, nil
	}

	logrus.WithField("property_id", alias).Error("Alias G- sem property ID configurado")
	return "", NewReportError(ErrPropertyNotConfigured, apiErrors.ErrMissingProperty)
}

// classifyFetchError traduz os erros das camadas de token e transporte
// para a taxonomia de códigos exposta pela API
func classifyFetchError(err error) *ReportError {
	if errors.Is(err, gaclient.ErrInvalidCredential) {
		return NewReportError(err, apiErrors.ErrInvalidCredential)
	}
	if errors.Is(err, gaclient.ErrTokenExchange) {
		return NewReportError(err, apiErrors.ErrTokenExchange)
	}

	// Rejeição 401/403 do provedor é repassada com o status original
	var apiErr *gadomain.APIError
	if errors.As(err, &apiErr) && apiErr.IsAuthDenied() {
		reportErr := NewReportError(err, apiErrors.ErrProviderDenied)
		reportErr.UpstreamStatus = apiErr.StatusCode
		return reportErr
	}

	if errors.Is(err, google.ErrBothProvidersFailed) {
		return NewReportError(err, apiErrors.ErrUpstreamUnavailable)
	}

	return NewReportError(err, apiErrors.ErrInternalServer)
}
