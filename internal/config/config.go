package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App    App    `mapstructure:",squash"`
	Server Server `mapstructure:",squash"`
	Google Google `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"app_env"`
}

// Google concentra a configuração do gateway de analytics: a credencial da
// conta de serviço, os identificadores de propriedade e os endpoints dos
// provedores. As URLs base podem ser sobrescritas, mas toda URL construída
// é revalidada contra a allow-list fixa de hosts antes de qualquer despacho.
type Google struct {
	// ServiceAccountKey é o JSON completo da conta de serviço (client_email
	// + private_key). Nunca é logado nem persistido.
	ServiceAccountKey string `mapstructure:"google_service_account_key"`

	// DefaultPropertyID é usado quando a requisição não informa propertyId
	DefaultPropertyID string `mapstructure:"ga_default_property_id"`
	// PropertyID é o ID numérico GA4 que substitui aliases "G-XXXXXXXXX"
	PropertyID string `mapstructure:"ga4_property_id"`
	// ViewID é o ID de view do Universal Analytics, contingência do alias
	ViewID string `mapstructure:"ga_view_id"`

	DataBaseURL      string `mapstructure:"ga_data_base_url"`
	ReportingBaseURL string `mapstructure:"ga_reporting_base_url"`
	TokenURL         string `mapstructure:"ga_token_url"`
	Scope            string `mapstructure:"ga_scope"`

	// TokenCacheEnabled liga o cache de tokens em memória. Desligado por
	// padrão: cada invocação do gateway rederiva o token do zero.
	TokenCacheEnabled bool          `mapstructure:"ga_token_cache_enabled"`
	TokenCacheTTL     time.Duration `mapstructure:"ga_token_cache_ttl"`
}

// IsDebug indica se mensagens de erro mais completas (porém sanitizadas)
// podem ser devolvidas ao cliente
func (c *Config) IsDebug() bool {
	return c.App.Environment == "" || c.App.Environment == "development" || c.App.Environment == "dev"
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("GA_DATA_BASE_URL", "https://analyticsdata.googleapis.com")
	viper.SetDefault("GA_REPORTING_BASE_URL", "https://analyticsreporting.googleapis.com")
	viper.SetDefault("GA_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GA_SCOPE", "https://www.googleapis.com/auth/analytics.readonly")

	viper.SetDefault("GA_TOKEN_CACHE_ENABLED", false)
	viper.SetDefault("GA_TOKEN_CACHE_TTL", "55m") // menor que a validade de 1h da assertion

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
