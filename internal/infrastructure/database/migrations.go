package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrator aplica as migrações embutidas no binário
type Migrator struct {
	m   *migrate.Migrate
	log logger.Logger
}

// NewMigrator cria um Migrator para a URL do banco (formato postgres://)
func NewMigrator(databaseURL string, log logger.Logger) (*Migrator, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir migrações: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar migrate: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// Up aplica todas as migrações pendentes
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	mg.logVersion("migrações aplicadas")
	return nil
}

// Down desfaz a última migração aplicada
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao desfazer migração: %w", err)
	}
	mg.logVersion("migração desfeita")
	return nil
}

// Close libera as conexões do migrate
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		mg.log.Warn("não foi possível ler a versão do schema", "error", err)
		return
	}
	mg.log.Info(msg, "version", version, "dirty", dirty)
}
