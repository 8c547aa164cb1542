// Package config carrega a configuração da aplicação a partir de variáveis de ambiente.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
)

// Drivers de armazenamento suportados
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config reúne toda a configuração da aplicação
type Config struct {
	Env      string
	LogLevel string
	Storage  string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Ledger   LedgerConfig
	CORS     CORSConfig
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port         string
	GinMode      string
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig contém as configurações para conexão com o PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
}

// JWTConfig contém as configurações de emissão de tokens
type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// RedisConfig contém as configurações do Redis; Addr vazio desativa o cliente
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LedgerConfig contém as regras de cobrança
type LedgerConfig struct {
	DistributionPolicy expense.Policy
	PaymentPolicy      payment.Policy
	AgingInterval      time.Duration
	Location           *time.Location
}

// CORSConfig contém as origens permitidas
type CORSConfig struct {
	AllowedOrigins []string
}

// ConnectionString retorna a string de conexão para o PostgreSQL
func (d DatabaseConfig) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load lê a configuração das variáveis de ambiente, com valores padrão
// para desenvolvimento local
func Load() (*Config, error) {
	distribution, err := expense.ParsePolicy(getEnv("DISTRIBUTION_POLICY", ""), expense.PolicyEqualSplit)
	if err != nil {
		return nil, fmt.Errorf("DISTRIBUTION_POLICY: %w", err)
	}
	paymentPolicy, err := payment.ParsePolicy(getEnv("PAYMENT_POLICY", ""))
	if err != nil {
		return nil, fmt.Errorf("PAYMENT_POLICY: %w", err)
	}
	location, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Europe/Bucharest"))
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	storage := strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres))
	if storage != StoragePostgres && storage != StorageMemory {
		return nil, fmt.Errorf("STORAGE_DRIVER inválido: %s", storage)
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Storage:  storage,
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			GinMode:      getEnv("GIN_MODE", "debug"),
			BasePath:     getEnv("API_BASE_PATH", "/api/v1"),
			ReadTimeout:  getEnvSeconds("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvSeconds("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvSeconds("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "erp_condominio"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  int32(getEnvInt("DB_MAX_CONNECTIONS", 10)),
			MinConnections:  int32(getEnvInt("DB_MIN_CONNECTIONS", 2)),
			MaxConnLifetime: getEnvSeconds("DB_MAX_LIFETIME", 300),
		},
		JWT: JWTConfig{
			SecretKey:  os.Getenv("JWT_SECRET_KEY"),
			Expiration: time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Ledger: LedgerConfig{
			DistributionPolicy: distribution,
			PaymentPolicy:      paymentPolicy,
			AgingInterval:      getEnvDuration("AGING_INTERVAL", time.Hour),
			Location:           location,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY não configurada")
	}
	return cfg, nil
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Second
}

// getEnvDuration aceita o formato de time.ParseDuration ("15m", "1h")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
