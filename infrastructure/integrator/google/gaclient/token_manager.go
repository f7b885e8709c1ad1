package gaclient

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/phoouze/devplaza-analytics-api/internal/config"
)

// Erros do fluxo de obtenção de token. ErrInvalidCredential é problema de
// configuração; ErrTokenExchange é rejeição do provedor (autenticação).
var (
	ErrInvalidCredential = errors.New("credencial da conta de serviço inválida")
	ErrTokenExchange     = errors.New("falha na troca do token de acesso")
)

var (
	// Conta de serviço do Google: local@projeto.iam.gserviceaccount.com
	serviceAccountEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+@[a-zA-Z0-9.-]+\.iam\.gserviceaccount\.com$`)
	// Formato aceitável de um bearer token
	accessTokenPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// ServiceCredential é a credencial da conta de serviço carregada do JSON de
// configuração. Imutável depois de carregada; nunca é logada nem persistida.
type ServiceCredential struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// TokenResponse é a resposta do endpoint OAuth na troca JWT-bearer
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenManager obtém tokens de acesso do Google via assertion assinada da
// conta de serviço. Por padrão não guarda nada entre invocações: cada chamada
// rederiva credencial, assertion e token do zero.
type TokenManager struct {
	cfg        *config.Config
	httpClient *http.Client
	cache      *tokenCache
	now        func() time.Time
}

// NewTokenManager cria uma nova instância do gerenciador de tokens
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// WithCache habilita o cache de tokens em memória, chaveado pela impressão
// digital da credencial e com expiração menor que a validade da assertion
func (tm *TokenManager) WithCache(ttl time.Duration) *TokenManager {
	tm.cache = newTokenCache(ttl)
	return tm
}

// AccessToken valida a credencial configurada, monta a assertion RS256 e a
// troca por um bearer token no endpoint OAuth
func (tm *TokenManager) AccessToken() (string, error) {
	credential, err := tm.loadCredential()
	if err != nil {
		return "", err
	}

	fingerprint := credentialFingerprint(credential)
	if tm.cache != nil {
		if token, ok := tm.cache.get(fingerprint); ok {
			logrus.Debug("Token de acesso reaproveitado do cache")
			return token, nil
		}
	}

	assertion, err := tm.buildAssertion(credential)
	if err != nil {
		return "", err
	}

	token, err := tm.exchangeAssertion(assertion)
	if err != nil {
		return "", err
	}

	if tm.cache != nil {
		tm.cache.put(fingerprint, token)
	}

	return token, nil
}

// loadCredential interpreta o JSON da conta de serviço e valida seu formato
func (tm *TokenManager) loadCredential() (*ServiceCredential, error) {
	raw := tm.cfg.Google.ServiceAccountKey
	if raw == "" {
		return nil, fmt.Errorf("%w: chave da conta de serviço não configurada", ErrInvalidCredential)
	}

	var credential ServiceCredential
	if err := json.Unmarshal([]byte(raw), &credential); err != nil {
		return nil, fmt.Errorf("%w: JSON malformado", ErrInvalidCredential)
	}

	if credential.ClientEmail == "" || credential.PrivateKey == "" {
		return nil, fmt.Errorf("%w: client_email e private_key são obrigatórios", ErrInvalidCredential)
	}

	if !serviceAccountEmailPattern.MatchString(credential.ClientEmail) {
		return nil, fmt.Errorf("%w: e-mail da conta de serviço em formato inesperado", ErrInvalidCredential)
	}

	return &credential, nil
}

// buildAssertion monta e assina o JWT <header>.<claims>.<assinatura> com
// RS256 e base64url sem padding, válido por uma hora
func (tm *TokenManager) buildAssertion(credential *ServiceCredential) (string, error) {
	// Chaves vindas de variáveis de ambiente costumam chegar com \n literal
	pem := strings.ReplaceAll(credential.PrivateKey, `\n`, "\n")

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
	if err != nil {
		return "", fmt.Errorf("%w: chave privada PEM ilegível", ErrInvalidCredential)
	}

	now := tm.now().Unix()
	claims := jwt.MapClaims{
		"iss":   credential.ClientEmail,
		"scope": tm.cfg.Google.Scope,
		"aud":   tm.cfg.Google.TokenURL,
		"iat":   now,
		"exp":   now + 3600,
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		logrus.WithError(err).Error("Erro ao assinar a assertion da conta de serviço")
		return "", fmt.Errorf("%w: assinatura da assertion falhou", ErrInvalidCredential)
	}

	return assertion, nil
}

// exchangeAssertion troca a assertion por um bearer token no endpoint OAuth.
// O endpoint passa pelo guard de allow-list antes do despacho.
func (tm *TokenManager) exchangeAssertion(assertion string) (string, error) {
	tokenURL := tm.cfg.Google.TokenURL
	if err := AssertAllowed(tokenURL); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	form.Set("assertion", assertion)

	resp, err := tm.httpClient.PostForm(tokenURL, form)
	if err != nil {
		logrus.WithError(err).Error("Erro de transporte na troca do token")
		return "", fmt.Errorf("%w: %v", ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: erro ao ler resposta", ErrTokenExchange)
	}

	if resp.StatusCode != http.StatusOK {
		// O corpo do provedor fica só no log; nunca segue para o cliente
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("Endpoint de token recusou a assertion")
		return "", fmt.Errorf("%w: status %d", ErrTokenExchange, resp.StatusCode)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("%w: resposta malformada", ErrTokenExchange)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: resposta sem access_token", ErrTokenExchange)
	}

	if !validAccessToken(tokenResp.AccessToken) {
		return "", fmt.Errorf("%w: access_token em formato inesperado", ErrTokenExchange)
	}

	logrus.Debug("Token de acesso obtido com sucesso")
	return tokenResp.AccessToken, nil
}

// validAccessToken confere o formato e o tamanho do bearer token
func validAccessToken(token string) bool {
	if len(token) < 10 || len(token) > 2048 {
		return false
	}
	return accessTokenPattern.MatchString(token)
}

// credentialFingerprint deriva a chave de cache da credencial sem expor
// nenhum dos seus campos
func credentialFingerprint(credential *ServiceCredential) string {
	sum := sha256.Sum256([]byte(credential.ClientEmail + "\x00" + credential.PrivateKey))
	return hex.EncodeToString(sum[:])
}
