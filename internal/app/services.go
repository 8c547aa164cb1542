package app

import (
	"github.com/hugohenrick/erp-condominio/internal/config"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
	"github.com/hugohenrick/erp-condominio/internal/service"
	"github.com/hugohenrick/erp-condominio/pkg/auth"
	"github.com/hugohenrick/erp-condominio/pkg/idempotency"
	"github.com/hugohenrick/erp-condominio/pkg/logger"
)

// Services reúne os serviços de aplicação
type Services struct {
	Associations  *service.AssociationService
	Blocks        *service.BlockService
	Apartments    *service.ApartmentService
	Users         *service.UserService
	Expenses      *service.ExpenseService
	Payments      *service.PaymentService
	Aging         *service.AgingService
	Meters        *service.MeterService
	Announcements *service.AnnouncementService
	Repairs       *service.RepairService
	Dashboard     *service.DashboardService
	Reports       *service.ReportService
}

// NewServices monta os serviços sobre os repositórios. tokens pode ser nil
// em binários que não autenticam usuários.
func NewServices(cfg config.LedgerConfig, repos *Repositories, keys idempotency.Store, tokens *auth.JWTService, log logger.Logger) *Services {
	opts := []service.Option{service.WithLogger(log)}
	return &Services{
		Associations:  service.NewAssociationService(repos.Associations, repos.Users, opts...),
		Blocks:        service.NewBlockService(repos.Associations, repos.Blocks, opts...),
		Apartments:    service.NewApartmentService(repos.Blocks, repos.Apartments, repos.Users, opts...),
		Users:         service.NewUserService(repos.Users, repos.Associations, repos.Blocks, tokens, opts...),
		Expenses:      service.NewExpenseService(repos.Blocks, repos.Apartments, repos.Expenses, cfg.DistributionPolicy, opts...),
		Payments: service.NewPaymentService(repos.Blocks, repos.Apartments, repos.Expenses, repos.Payments,
			payment.NewReconciler(cfg.PaymentPolicy), keys, opts...),
		Aging:         service.NewAgingService(repos.Expenses, opts...),
		Meters:        service.NewMeterService(repos.Blocks, repos.Apartments, repos.Meters, opts...),
		Announcements: service.NewAnnouncementService(repos.Blocks, repos.Announcements, opts...),
		Repairs:       service.NewRepairService(repos.Blocks, repos.Apartments, repos.Repairs, opts...),
		Dashboard:     service.NewDashboardService(repos.Dashboard, opts...),
		Reports:       service.NewReportService(repos.Blocks, repos.Expenses, opts...),
	}
}
