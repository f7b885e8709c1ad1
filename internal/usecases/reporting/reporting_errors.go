package reporting

import (
	"errors"
	"fmt"

	"github.com/phoouze/devplaza-analytics-api/pkg/apiErrors"
)

// Erros de validação e configuração do gateway
var (
	// Erros de validação (nenhum deles gera chamada externa)
	ErrInvalidRequestBody   = errors.New("corpo de requisição inválido ou perigoso")
	ErrInvalidPropertyID    = errors.New("formato de property ID inválido")
	ErrInvalidDateFormat    = errors.New("formato de data inválido")
	ErrInvalidMetricName    = errors.New("nome de métrica em formato inválido")
	ErrInvalidDimensionName = errors.New("nome de dimensão em formato inválido")
	ErrTooManyMetrics       = errors.New("quantidade de métricas acima do limite")
	ErrTooManyDimensions    = errors.New("quantidade de dimensões acima do limite")
	ErrPayloadTooLarge      = errors.New("corpo de requisição grande ou profundo demais")

	// Erros de configuração
	ErrCredentialNotConfigured = errors.New("credencial da conta de serviço não configurada")
	ErrPropertyNotConfigured   = errors.New("alias G- detectado mas nem GA4_PROPERTY_ID nem GA_VIEW_ID configurados")
	ErrConfiguredPropertyBad   = errors.New("property ID vindo da configuração em formato inválido")
	ErrNoPropertyID            = errors.New("nenhum property ID informado ou configurado")
)

// ReportError carrega um erro do gateway já classificado na taxonomia,
// com o código que a borda HTTP usa para escolher status e mensagem
type ReportError struct {
	Err  error  // Erro base
	Code string // Código de erro para a API
	// UpstreamStatus preserva o status 401/403 do provedor quando a
	// rejeição deve ser repassada sem alteração; zero nos demais casos
	UpstreamStatus int
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError cria um erro classificado do gateway
func NewReportError(baseErr error, code string) *ReportError {
	return &ReportError{Err: baseErr, Code: code}
}

// validationError embrulha um erro de validação com o código apropriado
func validationError(baseErr error, detail string) *ReportError {
	code := apiErrors.ErrInvalidFormat
	switch {
	case errors.Is(baseErr, ErrPayloadTooLarge), errors.Is(baseErr, ErrInvalidRequestBody):
		code = apiErrors.ErrInvalidRequest
	case errors.Is(baseErr, ErrTooManyMetrics), errors.Is(baseErr, ErrTooManyDimensions):
		code = apiErrors.ErrTooManyIdentifiers
	}

	if detail != "" {
		return NewReportError(fmt.Errorf("%w: %s", baseErr, detail), code)
	}
	return NewReportError(baseErr, code)
}

// IsValidationError verifica se o erro pertence à família de validação
func IsValidationError(err error) bool {
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		return false
	}
	switch reportErr.Code {
	case apiErrors.ErrInvalidRequest, apiErrors.ErrInvalidFormat,
		apiErrors.ErrPayloadTooLarge, apiErrors.ErrTooManyIdentifiers:
		return true
	}
	return false
}

// IsConfigError verifica se o erro pertence à família de configuração
func IsConfigError(err error) bool {
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		return false
	}
	switch reportErr.Code {
	case apiErrors.ErrMissingCredential, apiErrors.ErrInvalidCredential, apiErrors.ErrMissingProperty:
		return true
	}
	return false
}

// IsAuthError verifica se o erro pertence à família de autenticação
func IsAuthError(err error) bool {
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		return false
	}
	return reportErr.Code == apiErrors.ErrTokenExchange || reportErr.Code == apiErrors.ErrProviderDenied
}
