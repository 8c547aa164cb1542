package main

import (
	"log"

	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	appLog, err := logger.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer appLog.Sync()

	// Valores monetários trafegam como números JSON
	decimal.MarshalJSONWithoutQuotes = true

	// Criar aplicação
	app, err := NewApp(cfg, appLog)
	if err != nil {
		appLog.Error("erro ao iniciar aplicação", "error", err)
		log.Fatalf("Erro ao iniciar aplicação: %v", err)
	}

	// Iniciar o servidor
	if err := app.Start(); err != nil {
		appLog.Error("servidor encerrado com erro", "error", err)
		log.Fatalf("Erro no servidor: %v", err)
	}
}
