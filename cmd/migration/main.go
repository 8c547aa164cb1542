package main

import (
	"log"

	"github.com/hugohenrick/erp-condominio/internal/app"
	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/joho/godotenv"
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

	migrationLog, err := logger.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer migrationLog.Sync()

	// Executar as migrações
	if err := app.MigrateUp(cfg, migrationLog); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
