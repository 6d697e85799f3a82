package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Meta             Meta             `mapstructure:",squash"`
	Google           Google           `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	SmartCache       SmartCache       `mapstructure:",squash"`
	MemoryCache      MemoryCache      `mapstructure:",squash"`
	Aggregation      Aggregation      `mapstructure:",squash"`
	DailyKpiSync     DailyKpiSync     `mapstructure:",squash"`
	PeriodTransition PeriodTransition `mapstructure:",squash"`
	RetentionCleanup RetentionCleanup `mapstructure:",squash"`
	SecretKey        string           `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL               string `mapstructure:"meta_base_url"`
	URL                   string `mapstructure:"meta_url"`
	Version               string `mapstructure:"meta_version"`
	AccessToken           string `mapstructure:"meta_access_token"`
	RequestTimeoutSeconds int    `mapstructure:"meta_request_timeout_seconds"`
}

type Google struct {
	URL                   string `mapstructure:"google_url"`
	AccessToken           string `mapstructure:"google_access_token"`
	DeveloperToken        string `mapstructure:"google_developer_token"`
	RequestTimeoutSeconds int    `mapstructure:"google_request_timeout_seconds"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type SmartCache struct {
	TTLHours            int `mapstructure:"smart_cache_ttl_hours"`
	FetchTimeoutSeconds int `mapstructure:"smart_cache_fetch_timeout_seconds"`
}

type MemoryCache struct {
	MaxEntries             int `mapstructure:"memory_cache_max_entries"`
	MaxMemoryMB            int `mapstructure:"memory_cache_max_memory_mb"`
	CleanupIntervalSeconds int `mapstructure:"memory_cache_cleanup_interval_seconds"`
}

type Aggregation struct {
	StaleLookbackRows int `mapstructure:"aggregation_stale_lookback_rows"`
}

type DailyKpiSync struct {
	CronSchedule        string `mapstructure:"daily_kpi_sync_cron"`
	LookbackDays        int    `mapstructure:"daily_kpi_sync_lookback_days"`
	RequestDelaySeconds int    `mapstructure:"daily_kpi_sync_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"daily_kpi_sync_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"daily_kpi_sync_enabled"`
}

type PeriodTransition struct {
	CronSchedule string `mapstructure:"period_transition_cron"`
	Enabled      bool   `mapstructure:"period_transition_enabled"`
}

type RetentionCleanup struct {
	CronSchedule           string `mapstructure:"retention_cleanup_cron"`
	Enabled                bool   `mapstructure:"retention_cleanup_enabled"`
	DailyRetentionDays     int    `mapstructure:"retention_cleanup_daily_days"`
	SummaryRetentionMonths int    `mapstructure:"retention_cleanup_summary_months"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/reporting")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_REQUEST_TIMEOUT_SECONDS", 30)

	viper.SetDefault("GOOGLE_URL", "https://ads.gateway.internal/api/v1")
	viper.SetDefault("GOOGLE_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("GOOGLE_DEVELOPER_TOKEN", "your_developer_token")
	viper.SetDefault("GOOGLE_REQUEST_TIMEOUT_SECONDS", 30)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults do smart cache de período corrente
	viper.SetDefault("SMART_CACHE_TTL_HOURS", 3)            // Dados com menos de 3h são considerados frescos
	viper.SetDefault("SMART_CACHE_FETCH_TIMEOUT_SECONDS", 45)

	// Defaults do cache em memória
	viper.SetDefault("MEMORY_CACHE_MAX_ENTRIES", 1000)
	viper.SetDefault("MEMORY_CACHE_MAX_MEMORY_MB", 100)
	viper.SetDefault("MEMORY_CACHE_CLEANUP_INTERVAL_SECONDS", 600)

	// Quantas linhas diárias recentes usar como fallback quando o mês pedido
	// não tem dados
	viper.SetDefault("AGGREGATION_STALE_LOOKBACK_ROWS", 7)

	// Defaults para sincronização diária de KPIs
	viper.SetDefault("DAILY_KPI_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("DAILY_KPI_SYNC_LOOKBACK_DAYS", 7)         // 7 dias para buscar dados
	viper.SetDefault("DAILY_KPI_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre requisições
	viper.SetDefault("DAILY_KPI_SYNC_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("DAILY_KPI_SYNC_ENABLED", false)

	// Defaults para a virada de período (arquivar cache expirado)
	viper.SetDefault("PERIOD_TRANSITION_CRON", "0 * * * *") // Toda hora cheia
	viper.SetDefault("PERIOD_TRANSITION_ENABLED", false)

	// Defaults para limpeza de retenção
	viper.SetDefault("RETENTION_CLEANUP_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("RETENTION_CLEANUP_ENABLED", false)
	viper.SetDefault("RETENTION_CLEANUP_DAILY_DAYS", 90)     // 90 dias de KPIs diários
	viper.SetDefault("RETENTION_CLEANUP_SUMMARY_MONTHS", 24) // 24 meses de resumos

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
