package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro do gateway de analytics
const (
	// Erros de requisição (REQ)
	ErrMethodNotAllowed = "REQ_001" // Método HTTP não permitido

	// Erros de validação (VAL)
	ErrInvalidRequest     = "VAL_001" // Corpo de requisição inválido ou perigoso
	ErrInvalidFormat      = "VAL_002" // Formato de campo inválido
	ErrPayloadTooLarge    = "VAL_003" // Corpo excede o tamanho ou profundidade máxima
	ErrTooManyIdentifiers = "VAL_004" // Quantidade de métricas/dimensões acima do limite

	// Erros de configuração (CFG)
	ErrMissingCredential = "CFG_001" // Credencial de conta de serviço ausente
	ErrInvalidCredential = "CFG_002" // Credencial malformada
	ErrMissingProperty   = "CFG_003" // Nenhum property ID configurado para o alias

	// Erros de autenticação junto ao provedor (AUTH)
	ErrTokenExchange  = "AUTH_001" // Troca de assertion por token negada
	ErrProviderDenied = "AUTH_002" // Provedor rejeitou a credencial (401/403)

	// Erros do servidor e upstream (SRV)
	ErrInternalServer      = "SRV_001" // Erro interno do servidor
	ErrUpstreamUnavailable = "SRV_002" // Primário e contingência esgotados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrPayloadTooLarge:     http.StatusBadRequest,
	ErrTooManyIdentifiers:  http.StatusBadRequest,
	ErrMissingCredential:   http.StatusInternalServerError,
	ErrInvalidCredential:   http.StatusInternalServerError,
	ErrMissingProperty:     http.StatusBadRequest,
	ErrTokenExchange:       http.StatusUnauthorized,
	ErrProviderDenied:      http.StatusForbidden,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrUpstreamUnavailable: http.StatusBadGateway,
}

// APIError é o envelope de falha devolvido ao portal
type APIError struct {
	Success bool   `json:"success"`         // Sempre false em erros
	Code    string `json:"code"`            // Código de erro para o cliente
	Error   string `json:"error,omitempty"` // Mensagem já sanitizada
}

// StatusFor devolve o status HTTP associado ao código de erro
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o envelope de falha padronizado na resposta HTTP.
// A mensagem deve chegar aqui já sanitizada: este pacote não decide o que
// pode ou não ser exposto.
func WriteError(w http.ResponseWriter, code string, message string) {
	WriteErrorStatus(w, StatusFor(code), code, message)
}

// WriteErrorStatus escreve o envelope com um status explícito, usado para
// repassar 401/403 do provedor sem alteração.
func WriteErrorStatus(w http.ResponseWriter, status int, code string, message string) {
	apiErr := APIError{
		Success: false,
		Code:    code,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
