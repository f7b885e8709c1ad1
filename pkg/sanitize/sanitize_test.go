package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Caminho de arquivo é removido",
			input:    "não foi possível ler /etc/secrets/key.pem",
			expected: "não foi possível ler [PATH_REMOVED]",
		},
		{
			name:     "Endereço IPv4 é removido",
			input:    "conexão recusada por 10.0.42.7 na porta 443",
			expected: "conexão recusada por [IP_REMOVED] na porta 443",
		},
		{
			name:     "Token hexadecimal longo é removido",
			input:    "assinatura deadbeefdeadbeefdeadbeefdeadbeefdeadbeef rejeitada",
			expected: "assinatura [TOKEN_REMOVED] rejeitada",
		},
		{
			name:     "Mensagem vazia vira erro desconhecido",
			input:    "",
			expected: "Erro desconhecido",
		},
		{
			name:     "Mensagem limpa passa intacta",
			input:    "propriedade sem dados no período",
			expected: "propriedade sem dados no período",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.input))
		})
	}
}

// Cenário do contrato de redação: os três padrões juntos na mesma mensagem,
// nenhum substring original pode sobreviver.
func TestErrorMessageRedactsAllThree(t *testing.T) {
	hex40 := strings.Repeat("ab", 20)
	input := "falha upstream: /etc/secrets/key.pem negado para 192.168.1.1 com token " + hex40

	out := ErrorMessage(input)

	assert.NotContains(t, out, "/etc/secrets/key.pem")
	assert.NotContains(t, out, "192.168.1.1")
	assert.NotContains(t, out, hex40)
}
