// Package memory implementa todos os repositórios em memória, com a mesma
// semântica das implementações PostgreSQL (unicidade, atomicidade da
// distribuição, bloqueio de cotas e varredura condicional). Um único mutex
// serializa todas as operações.
package memory

import (
	"sync"

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
)

// Store guarda todas as entidades
type Store struct {
	mu sync.Mutex

	associations  map[string]association.Association
	blocks        map[string]block.Block
	apartments    map[string]apartment.Apartment
	users         map[string]user.User
	expenses      map[string]expense.Expense
	allocations   map[string]expense.ApartmentExpense
	payments      map[string]payment.Payment
	readings      map[string]meter.Reading
	announcements map[string]announcement.Announcement
	repairs       map[string]repair.Request
}

// NewStore cria um Store vazio
func NewStore() *Store {
	return &Store{
		associations:  make(map[string]association.Association),
		blocks:        make(map[string]block.Block),
		apartments:    make(map[string]apartment.Apartment),
		users:         make(map[string]user.User),
		expenses:      make(map[string]expense.Expense),
		allocations:   make(map[string]expense.ApartmentExpense),
		payments:      make(map[string]payment.Payment),
		readings:      make(map[string]meter.Reading),
		announcements: make(map[string]announcement.Announcement),
		repairs:       make(map[string]repair.Request),
	}
}

// Associations retorna o repositório de associações
func (s *Store) Associations() association.Repository { return &associationRepo{s} }

// Blocks retorna o repositório de blocos
func (s *Store) Blocks() block.Repository { return &blockRepo{s} }

// Apartments retorna o repositório de apartamentos
func (s *Store) Apartments() apartment.Repository { return &apartmentRepo{s} }

// Users retorna o repositório de usuários
func (s *Store) Users() user.Repository { return &userRepo{s} }

// Expenses retorna o repositório de despesas e cotas
func (s *Store) Expenses() expense.Repository { return &expenseRepo{s} }

// Payments retorna o repositório de pagamentos
func (s *Store) Payments() payment.Repository { return &paymentRepo{s} }

// Meters retorna o repositório de leituras de medidor
func (s *Store) Meters() meter.Repository { return &meterRepo{s} }

// Announcements retorna o repositório de anúncios
func (s *Store) Announcements() announcement.Repository { return &announcementRepo{s} }

// Repairs retorna o repositório de pedidos de reparo
func (s *Store) Repairs() repair.Repository { return &repairRepo{s} }

// Dashboard retorna o repositório de contagens do painel
func (s *Store) Dashboard() dashboard.Repository { return &dashboardRepo{s} }

// Funções auxiliares de hierarquia; exigem s.mu travado

func (s *Store) associationOfBlock(blockID string) string {
	return s.blocks[blockID].AssociationID
}

func (s *Store) apartmentBlock(apartmentID string) (blockID, associationID, ownerID string) {
	ap := s.apartments[apartmentID]
	return ap.BlockID, s.associationOfBlock(ap.BlockID), ap.OwnerID
}

func (s *Store) userName(id string) string {
	if u, ok := s.users[id]; ok {
		return u.FullName()
	}
	return ""
}

func matches(filter, value string) bool {
	return filter == "" || filter == value
}

func inList(ids []string, id string) bool {
	if ids == nil {
		return true
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
