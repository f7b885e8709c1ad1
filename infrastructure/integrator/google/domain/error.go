package domain

import "fmt"

// APIError representa uma resposta não-2xx de um provedor. O corpo fica
// disponível para os logs do servidor; a mensagem exposta ao cliente é
// decidida (e sanitizada) na borda HTTP, nunca aqui.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("erro na API %s. Status: %d, Corpo: %s", e.Provider, e.StatusCode, e.Body)
}

// IsAuthDenied indica rejeição de credencial pelo provedor (401/403),
// repassada ao cliente com o mesmo status.
func (e *APIError) IsAuthDenied() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
