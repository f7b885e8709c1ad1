package reporting

import (
	"github.com/phoouze/devplaza-analytics-api/internal/domain"
)

// Reporter coordena a geração de relatórios: valida o corpo recebido,
// resolve o property ID efetivo e delega a busca ao integrador
type Reporter interface {
	// GenerateReport recebe o corpo bruto da requisição e devolve o
	// relatório canônico; erros voltam já classificados em *ReportError
	GenerateReport(body []byte) (*domain.AnalyticsReport, error)
}

// AnalyticsFetcher é o contrato que o integrador do Google cumpre
type AnalyticsFetcher interface {
	FetchReport(query *domain.ReportQuery) (*domain.AnalyticsReport, error)
}
