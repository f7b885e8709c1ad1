package handler

import (
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/phoouze/devplaza-analytics-api/internal/domain"
	"github.com/phoouze/devplaza-analytics-api/internal/usecases/reporting"
	"github.com/phoouze/devplaza-analytics-api/pkg/apiErrors"
	"github.com/phoouze/devplaza-analytics-api/pkg/log"
	"github.com/phoouze/devplaza-analytics-api/pkg/sanitize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// analyticsResponse é o envelope de sucesso devolvido ao portal
type analyticsResponse struct {
	Success bool                    `json:"success"`
	Data    *domain.AnalyticsReport `json:"data"`
	Source  domain.Source           `json:"source"`
}

func GenerateAnalyticsReport(service reporting.Reporter, debug bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		// Leitura limitada: um byte acima do teto já denuncia corpo
		// grande demais sem precisar carregá-lo inteiro
		body, err := io.ReadAll(io.LimitReader(r.Body, reporting.MaxBodyBytes+1))
		if err != nil {
			logger.WithError(err).Warn("analytics: failed to read request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Não foi possível ler o corpo da requisição")
			return
		}

		report, err := service.GenerateReport(body)
		if err != nil {
			writeReportError(w, r, err, debug)
			return
		}

		logger.WithFields(log.Fields{
			"source": string(report.Source),
		}).Info("analytics: report generated")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		response := analyticsResponse{
			Success: true,
			Data:    report,
			Source:  report.Source,
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("analytics: failed to encode response")
		}
	})
}

// writeReportError converte o erro classificado no envelope de falha. A
// mensagem sai sempre sanitizada; em modo debug ela preserva mais detalhe,
// mas caminhos, IPs e tokens são removidos em qualquer modo.
func writeReportError(w http.ResponseWriter, r *http.Request, err error, debug bool) {
	logger := log.ForContext(r.Context())

	code := apiErrors.ErrInternalServer
	upstreamStatus := 0

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		code = reportErr.Code
		upstreamStatus = reportErr.UpstreamStatus
	}

	logger.WithFields(log.Fields{
		"error": err.Error(),
	}).Warn("analytics: report generation failed with code " + code)

	// Erros de validação são causados pelo cliente e voltam com a mensagem
	// específica; falhas de infraestrutura voltam genéricas fora do debug
	message := genericMessageFor(code)
	if debug || reporting.IsValidationError(err) {
		message = sanitize.ErrorMessage(err.Error())
	}

	if upstreamStatus != 0 {
		apiErrors.WriteErrorStatus(w, upstreamStatus, code, message)
		return
	}
	apiErrors.WriteError(w, code, message)
}

// genericMessageFor devolve a mensagem estável por família de erro, sem
// nenhum detalhe interno
func genericMessageFor(code string) string {
	switch code {
	case apiErrors.ErrInvalidRequest, apiErrors.ErrInvalidFormat,
		apiErrors.ErrPayloadTooLarge, apiErrors.ErrTooManyIdentifiers:
		return "Requisição inválida"
	case apiErrors.ErrMissingCredential, apiErrors.ErrInvalidCredential:
		return "Serviço de analytics não configurado"
	case apiErrors.ErrMissingProperty:
		return "Property ID não configurado para este site"
	case apiErrors.ErrTokenExchange:
		return "Falha na autenticação com o provedor de analytics"
	case apiErrors.ErrProviderDenied:
		return "Provedor de analytics recusou o acesso"
	case apiErrors.ErrUpstreamUnavailable:
		return "Dados de analytics indisponíveis no momento"
	default:
		return "Erro interno do servidor"
	}
}
