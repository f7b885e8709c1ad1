package gaclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	gadomain "github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/domain"
	"github.com/phoouze/devplaza-analytics-api/internal/config"
)

// Client expõe as chamadas de relatório aos dois provedores do Google
// Analytics. RunReport atende o caminho primário e também as buscas
// complementares (top páginas, países, dispositivos); BatchGet atende a
// contingência legada.
type Client interface {
	RunReport(propertyID string, body *gadomain.RunReportRequest, accessToken string) (*gadomain.RunReportResponse, error)
	BatchGet(body *gadomain.BatchGetRequest, accessToken string) (*gadomain.BatchGetResponse, error)
}

type GAClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &GAClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RunReport faz o POST no runReport do GA4 para a propriedade informada
func (c *GAClient) RunReport(propertyID string, body *gadomain.RunReportRequest, accessToken string) (*gadomain.RunReportResponse, error) {
	apiURL, err := buildRunReportURL(c.Cfg.Google.DataBaseURL, propertyID)
	if err != nil {
		return nil, err
	}

	raw, err := c.postJSON(apiURL, "ga4", body, accessToken)
	if err != nil {
		return nil, err
	}

	var response gadomain.RunReportResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar resposta do GA4")
		return nil, err
	}

	return &response, nil
}

// BatchGet faz o POST no batchGet do Universal Analytics
func (c *GAClient) BatchGet(body *gadomain.BatchGetRequest, accessToken string) (*gadomain.BatchGetResponse, error) {
	apiURL, err := buildBatchGetURL(c.Cfg.Google.ReportingBaseURL)
	if err != nil {
		return nil, err
	}

	raw, err := c.postJSON(apiURL, "ua", body, accessToken)
	if err != nil {
		return nil, err
	}

	var response gadomain.BatchGetResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar resposta do Universal Analytics")
		return nil, err
	}

	return &response, nil
}

// postJSON envia o corpo JSON com o bearer token e devolve o corpo da
// resposta, ou um APIError quando o status não é 2xx
func (c *GAClient) postJSON(apiURL, provider string, body any, accessToken string) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar a requisição")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("provider", provider).Error("Erro ao fazer a requisição ao provedor")
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &gadomain.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		}
		// Detalhe completo fica no log do servidor; quem chama decide o que
		// pode chegar ao cliente
		logrus.WithFields(logrus.Fields{
			"provider": provider,
			"status":   resp.StatusCode,
		}).Error("Provedor de analytics respondeu com erro")
		return nil, apiErr
	}

	return raw, nil
}
