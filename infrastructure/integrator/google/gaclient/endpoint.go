package gaclient

import (
	"errors"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// Allow-list fixa de hosts: relatórios GA4, relatórios legados e troca de
// token. Nenhuma URL fora desta lista (ou fora de HTTPS) pode ser despachada,
// independente do que a configuração diga.
var allowedHosts = map[string]bool{
	"analyticsdata.googleapis.com":      true,
	"analyticsreporting.googleapis.com": true,
	"oauth2.googleapis.com":             true,
}

// ErrEndpointNotAllowed é devolvido para qualquer URL reprovada na checagem.
// A mensagem é genérica de propósito: a URL malformada nunca sai do log.
var ErrEndpointNotAllowed = errors.New("endpoint inválido")

// AssertAllowed valida uma URL contra a allow-list de hosts e exige HTTPS.
// É sempre chamada sobre a URL final já construída, como segunda barreira
// independente da própria construção.
func AssertAllowed(rawURL string) error {
	if rawURL == "" {
		return ErrEndpointNotAllowed
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		logrus.WithError(err).Error("Guard de endpoint: URL não pôde ser interpretada")
		return ErrEndpointNotAllowed
	}

	if parsed.Scheme != "https" || !allowedHosts[parsed.Hostname()] {
		logrus.WithFields(logrus.Fields{
			"host":   parsed.Hostname(),
			"scheme": parsed.Scheme,
		}).Error("Guard de endpoint: host ou esquema fora da allow-list")
		return ErrEndpointNotAllowed
	}

	return nil
}

// buildRunReportURL monta a URL do runReport GA4 embutindo o propertyId como
// segmento de caminho percent-encoded, e revalida o resultado na allow-list
func buildRunReportURL(baseURL, propertyID string) (string, error) {
	built := strings.TrimRight(baseURL, "/") + "/v1beta/properties/" + url.PathEscape(propertyID) + ":runReport"

	if err := AssertAllowed(built); err != nil {
		return "", err
	}

	return built, nil
}

// buildBatchGetURL monta a URL do batchGet do Universal Analytics
func buildBatchGetURL(baseURL string) (string, error) {
	built := strings.TrimRight(baseURL, "/") + "/v4/reports:batchGet"

	if err := AssertAllowed(built); err != nil {
		return "", err
	}

	return built, nil
}
