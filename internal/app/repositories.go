// Package app monta repositórios e serviços a partir da configuração; é
// compartilhado pelos binários da API e da linha de comando.
package app

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-condominio/internal/adapter/repository"
	"github.com/hugohenrick/erp-condominio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/dashboard"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/meter"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/domain/repair"
	"github.com/hugohenrick/erp-condominio/internal/domain/user"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-condominio/pkg/idempotency"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// Repositories reúne as implementações de armazenamento em uso
type Repositories struct {
	Associations  association.Repository
	Blocks        block.Repository
	Apartments    apartment.Repository
	Users         user.Repository
	Expenses      expense.Repository
	Payments      payment.Repository
	Meters        meter.Repository
	Announcements announcement.Repository
	Repairs       repair.Repository
	Dashboard     dashboard.Repository

	close func()
}

// Close libera as conexões abertas
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// OpenRepositories abre o armazenamento configurado em STORAGE_DRIVER.
// Com postgres, migrate controla se as migrações pendentes são aplicadas antes.
func OpenRepositories(ctx context.Context, cfg *config.Config, migrate bool, log logger.Logger) (*Repositories, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("usando armazenamento em memória; os dados não são persistidos")
		return NewMemoryRepositories(memory.NewStore()), nil
	}

	if migrate {
		if err := MigrateUp(cfg, log); err != nil {
			return nil, err
		}
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Associations:  repository.NewPostgresAssociationRepository(db),
		Blocks:        repository.NewPostgresBlockRepository(db),
		Apartments:    repository.NewPostgresApartmentRepository(db),
		Users:         repository.NewPostgresUserRepository(db),
		Expenses:      repository.NewPostgresExpenseRepository(db),
		Payments:      repository.NewPostgresPaymentRepository(db),
		Meters:        repository.NewPostgresMeterRepository(db),
		Announcements: repository.NewPostgresAnnouncementRepository(db),
		Repairs:       repository.NewPostgresRepairRepository(db),
		Dashboard:     repository.NewPostgresDashboardRepository(db),
		close:         db.Close,
	}, nil
}

// NewMemoryRepositories expõe um Store em memória como Repositories
func NewMemoryRepositories(s *memory.Store) *Repositories {
	return &Repositories{
		Associations:  s.Associations(),
		Blocks:        s.Blocks(),
		Apartments:    s.Apartments(),
		Users:         s.Users(),
		Expenses:      s.Expenses(),
		Payments:      s.Payments(),
		Meters:        s.Meters(),
		Announcements: s.Announcements(),
		Repairs:       s.Repairs(),
		Dashboard:     s.Dashboard(),
	}
}

// MigrateUp aplica as migrações embutidas
func MigrateUp(cfg *config.Config, log logger.Logger) error {
	migrator, err := database.NewMigrator(cfg.Database.ConnectionString(), log)
	if err != nil {
		return err
	}
	defer migrator.Close()
	return migrator.Up()
}

// OpenIdempotency usa o Redis quando REDIS_ADDR está definido e, caso
// contrário, um armazenamento em memória do processo
func OpenIdempotency(ctx context.Context, cfg *config.Config, log logger.Logger) (idempotency.Store, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info("chaves de idempotência em memória")
		return idempotency.NewMemoryStore(), func() {}, nil
	}

	client, err := idempotency.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao conectar ao Redis: %w", err)
	}
	log.Info("chaves de idempotência no Redis", "addr", cfg.Redis.Addr)
	return idempotency.NewRedisStore(client, "condominio:idem:"), func() { _ = client.Close() }, nil
}
