// Package sanitize remove dados sensíveis de mensagens de erro antes que
// elas cheguem ao cliente: caminhos de arquivo, endereços IP e tokens
// hexadecimais longos.
package sanitize

import (
	"regexp"
)

var (
	pathPattern  = regexp.MustCompile(`/[^\s]*`)
	ipv4Pattern  = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	tokenPattern = regexp.MustCompile(`(?i)[a-f0-9]{32,}`)
)

// ErrorMessage aplica as três substituições de redação na mensagem.
// A ordem importa: caminhos primeiro, já que podem conter segmentos que
// parecem IPs ou hashes.
func ErrorMessage(message string) string {
	if message == "" {
		return "Erro desconhecido"
	}

	message = pathPattern.ReplaceAllString(message, "[PATH_REMOVED]")
	message = ipv4Pattern.ReplaceAllString(message, "[IP_REMOVED]")
	message = tokenPattern.ReplaceAllString(message, "[TOKEN_REMOVED]")

	return message
}
