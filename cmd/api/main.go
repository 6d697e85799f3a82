package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wmarczak/reporting-api/infrastructure/database/postgres"
	"github.com/wmarczak/reporting-api/infrastructure/integrator/google"
	"github.com/wmarczak/reporting-api/infrastructure/integrator/google/googleclient"
	"github.com/wmarczak/reporting-api/infrastructure/integrator/meta"
	"github.com/wmarczak/reporting-api/infrastructure/integrator/meta/metaclient"
	"github.com/wmarczak/reporting-api/infrastructure/repository"
	"github.com/wmarczak/reporting-api/internal/api"
	"github.com/wmarczak/reporting-api/internal/config"
	"github.com/wmarczak/reporting-api/internal/scheduler"
	"github.com/wmarczak/reporting-api/internal/usecases/aggregating"
	"github.com/wmarczak/reporting-api/internal/usecases/clients"
	"github.com/wmarczak/reporting-api/internal/usecases/reporting"
	"github.com/wmarczak/reporting-api/internal/usecases/smartcache"
	"github.com/wmarczak/reporting-api/pkg/memcache"
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

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	clientRepo := repository.NewClientRepository(pgConn)
	dailyKpiRepo := repository.NewDailyKpiRepository(pgConn)
	summaryRepo := repository.NewCampaignSummaryRepository(pgConn)
	periodCacheRepo := repository.NewCurrentPeriodCacheRepository(pgConn)

	metaClient := metaclient.NewClient(cfg)
	metaIntegrator := meta.New(cfg, metaClient)

	googleClient := googleclient.NewClient(cfg)
	googleIntegrator := google.New(cfg, googleClient)

	// Cache em memória compartilhado pela camada de smart cache
	memCache := memcache.New(
		cfg.MemoryCache.MaxEntries,
		cfg.MemoryCache.MaxMemoryMB,
		time.Duration(cfg.MemoryCache.CleanupIntervalSeconds)*time.Second,
	)
	defer memCache.Stop()

	clientService := clients.NewService(clientRepo)
	aggregatorService := aggregating.NewService(cfg, dailyKpiRepo)
	smartCacheService := smartcache.NewService(cfg, clientRepo, periodCacheRepo, memCache, metaIntegrator, googleIntegrator)
	reporterService := reporting.NewService(cfg, smartCacheService, aggregatorService, dailyKpiRepo, summaryRepo)

	// Inicializa os agendadores
	dailyKpiSyncService := scheduler.NewDailyKpiSyncService(
		clientRepo,
		dailyKpiRepo,
		cfg,
		metaIntegrator,
		googleIntegrator,
	)

	periodTransitionService := scheduler.NewPeriodTransitionService(
		periodCacheRepo,
		summaryRepo,
		cfg,
	)

	retentionCleanupService := scheduler.NewRetentionCleanupService(reporterService, cfg)

	// Inicia os agendadores em background
	if err := dailyKpiSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de KPIs diários")
	} else {
		logrus.Info("Agendador de sincronização de KPIs diários iniciado com sucesso")
	}

	if err := periodTransitionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de virada de período")
	} else {
		logrus.Info("Agendador de virada de período iniciado com sucesso")
	}

	if err := retentionCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de retenção")
	} else {
		logrus.Info("Agendador de limpeza de retenção iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		clientService,
		reporterService,
		aggregatorService,
		smartCacheService,
		dailyKpiSyncService,
		periodTransitionService,
		retentionCleanupService,
	)
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

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
