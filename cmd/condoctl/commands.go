package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/app"
	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/internal/infrastructure/database"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/idempotency"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
	"github.com/spf13/cobra"
)

// env é o contexto comum dos subcomandos
type env struct {
	cfg *config.Config
	log logger.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.NewLogger(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "condoctl",
		Short:         "Ferramentas operacionais do ERP de condomínios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSweepCmd(), newExportCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica ou desfaz migrações do banco",
	}

	run := func(down bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			migrator, err := database.NewMigrator(e.cfg.Database.ConnectionString(), e.log)
			if err != nil {
				return err
			}
			defer migrator.Close()

			if down {
				return migrator.Down()
			}
			return migrator.Up()
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Aplica as migrações pendentes", Args: cobra.NoArgs, RunE: run(false)},
		&cobra.Command{Use: "down", Short: "Desfaz a última migração", Args: cobra.NoArgs, RunE: run(true)},
	)
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep-overdue",
		Short: "Marca como OVERDUE as cotas pendentes vencidas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			asOfFlag, err := cmd.Flags().GetString("as-of")
			if err != nil {
				return err
			}
			asOf, err := service.ParseDate(asOfFlag, e.cfg.Ledger.Location)
			if err != nil {
				return err
			}
			if asOf.IsZero() {
				asOf = time.Now()
			}

			services, closeRepos, err := openServices(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer closeRepos()

			changed, err := services.Aging.SweepOverdue(cmd.Context(), asOf)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d cotas marcadas como OVERDUE (referência %s)\n", changed, asOf.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().String("as-of", "", "data de referência (AAAA-MM-DD ou RFC3339); padrão: agora")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-statement",
		Short: "Exporta o extrato de cotas de um bloco em xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.log.Sync()

			blockID, _ := cmd.Flags().GetString("block")
			out, _ := cmd.Flags().GetString("out")

			services, closeRepos, err := openServices(cmd.Context(), e)
			if err != nil {
				return err
			}
			defer closeRepos()

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("falha ao criar %s: %w", out, err)
			}
			b, err := services.Reports.ExportBlock(cmd.Context(), blockID, f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(out)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "extrato do bloco %s gravado em %s\n", b.Name, out)
			return nil
		},
	}
	cmd.Flags().String("block", "", "ID do bloco")
	cmd.Flags().String("out", "extras.xlsx", "arquivo de saída")
	_ = cmd.MarkFlagRequired("block")
	return cmd
}

// openServices abre o armazenamento sem aplicar migrações; o CLI não
// autentica usuários e usa chaves de idempotência locais
func openServices(ctx context.Context, e *env) (*app.Services, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	repos, err := app.OpenRepositories(ctx, e.cfg, false, e.log)
	if err != nil {
		return nil, nil, err
	}
	return app.NewServices(e.cfg.Ledger, repos, idempotency.NewMemoryStore(), nil, e.log), repos.Close, nil
}
