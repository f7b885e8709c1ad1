package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google"
	"github.com/phoouze/devplaza-analytics-api/infrastructure/integrator/google/gaclient"
	"github.com/phoouze/devplaza-analytics-api/internal/api"
	"github.com/phoouze/devplaza-analytics-api/internal/config"
	"github.com/phoouze/devplaza-analytics-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tokenManager := gaclient.NewTokenManager(cfg)
	if cfg.Google.TokenCacheEnabled {
		tokenManager = tokenManager.WithCache(cfg.Google.TokenCacheTTL)
		logrus.WithField("ttl", cfg.Google.TokenCacheTTL.String()).Info("Cache de token de acesso habilitado")
	}

	gaClient := gaclient.NewClient(cfg)
	googleIntegrator := google.New(cfg, gaClient, tokenManager)

	reportingService := reporting.NewService(cfg, googleIntegrator)

	server, err := api.New(cfg, reportingService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
