package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hugohenrick/erp-condominio/internal/domain"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/payment"
)

type expenseRepo struct{ s *Store }

func (r *expenseRepo) Create(_ context.Context, e *expense.Expense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blocks[e.BlockID]; !ok {
		return block.ErrNotFound
	}
	r.s.expenses[e.ID] = stripExpense(e)
	return nil
}

func (r *expenseRepo) CreateDistributed(_ context.Context, e *expense.Expense, allocations []*expense.ApartmentExpense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blocks[e.BlockID]; !ok {
		return block.ErrNotFound
	}
	if err := r.checkAllocations(allocations); err != nil {
		return err
	}
	r.s.expenses[e.ID] = stripExpense(e)
	r.storeAllocations(allocations)
	return nil
}

func (r *expenseRepo) SaveAllocations(_ context.Context, e *expense.Expense, allocations []*expense.ApartmentExpense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.expenses[e.ID]
	if !ok {
		return expense.ErrNotFound
	}
	if stored.IsDistributed() {
		return domain.ErrAlreadyDistributed
	}
	// Validação completa antes de gravar qualquer cota
	if err := r.checkAllocations(allocations); err != nil {
		return err
	}

	r.storeAllocations(allocations)
	stored.DistributionPolicy = e.DistributionPolicy
	stored.DistributedAt = e.DistributedAt
	stored.UpdatedAt = e.UpdatedAt
	r.s.expenses[e.ID] = stored
	return nil
}

func (r *expenseRepo) checkAllocations(allocations []*expense.ApartmentExpense) error {
	seen := make(map[[2]string]bool, len(allocations))
	for _, a := range allocations {
		key := [2]string{a.ExpenseID, a.ApartmentID}
		if seen[key] {
			return domain.ErrAlreadyDistributed
		}
		seen[key] = true
		for _, existing := range r.s.allocations {
			if existing.ExpenseID == a.ExpenseID && existing.ApartmentID == a.ApartmentID {
				return domain.ErrAlreadyDistributed
			}
		}
	}
	return nil
}

func (r *expenseRepo) storeAllocations(allocations []*expense.ApartmentExpense) {
	for _, a := range allocations {
		stored := *a
		stored.Expense = nil
		stored.ApartmentNumber = ""
		r.s.allocations[a.ID] = stored
	}
}

func (r *expenseRepo) FindByID(_ context.Context, id string) (*expense.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.expenses[id]
	if !ok {
		return nil, expense.ErrNotFound
	}
	return r.view(e), nil
}

func (r *expenseRepo) List(_ context.Context, f expense.Filter) ([]*expense.Expense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*expense.Expense
	for _, e := range r.s.expenses {
		if matches(f.BlockID, e.BlockID) && matches(f.AssociationID, r.s.associationOfBlock(e.BlockID)) {
			list = append(list, r.view(e))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].DueDate.After(list[j].DueDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *expenseRepo) FindAllocation(_ context.Context, id string) (*expense.ApartmentExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.allocations[id]
	if !ok {
		return nil, expense.ErrAllocationNotFound
	}
	return r.allocationView(a), nil
}

func (r *expenseRepo) FindAllocationByPair(_ context.Context, apartmentID, expenseID string) (*expense.ApartmentExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.allocations {
		if a.ApartmentID == apartmentID && a.ExpenseID == expenseID {
			return r.allocationView(a), nil
		}
	}
	return nil, expense.ErrAllocationNotFound
}

func (r *expenseRepo) ListAllocations(_ context.Context, f expense.AllocationFilter) ([]*expense.ApartmentExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*expense.ApartmentExpense
	for _, a := range r.s.allocations {
		blockID, associationID, ownerID := r.s.apartmentBlock(a.ApartmentID)
		if matches(f.ApartmentID, a.ApartmentID) &&
			matches(f.ExpenseID, a.ExpenseID) &&
			matches(f.BlockID, blockID) &&
			matches(f.AssociationID, associationID) &&
			matches(f.OwnerID, ownerID) &&
			matches(string(f.Status), string(a.Status)) {
			list = append(list, r.allocationView(a))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].DueDate.Equal(list[j].DueDate) {
			return list[i].DueDate.After(list[j].DueDate)
		}
		return list[i].ApartmentNumber < list[j].ApartmentNumber
	})
	return list, nil
}

func (r *expenseRepo) MarkOverdue(_ context.Context, associationID string, asOf time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var changed int64
	now := time.Now()
	for id, a := range r.s.allocations {
		if associationID != "" && r.s.blocks[r.s.expenses[a.ExpenseID].BlockID].AssociationID != associationID {
			continue
		}
		if a.MarkOverdue(asOf) {
			a.UpdatedAt = now
			r.s.allocations[id] = a
			changed++
		}
	}
	return changed, nil
}

func (r *expenseRepo) view(e expense.Expense) *expense.Expense {
	e.BlockName = r.s.blocks[e.BlockID].Name
	e.Summary = expense.AllocationSummary{}
	for _, a := range r.s.allocations {
		if a.ExpenseID != e.ID {
			continue
		}
		e.Summary.Total++
		switch a.Status {
		case expense.StatusPaid:
			e.Summary.Paid++
		case expense.StatusOverdue:
			e.Summary.Overdue++
		}
	}
	return &e
}

func (r *expenseRepo) allocationView(a expense.ApartmentExpense) *expense.ApartmentExpense {
	a.ApartmentNumber = r.s.apartments[a.ApartmentID].Number
	if e, ok := r.s.expenses[a.ExpenseID]; ok {
		e.BlockName = r.s.blocks[e.BlockID].Name
		a.Expense = &e
	}
	return &a
}

func stripExpense(e *expense.Expense) expense.Expense {
	stored := *e
	stored.BlockName = ""
	stored.Summary = expense.AllocationSummary{}
	return stored
}

type paymentRepo struct{ s *Store }

func (r *paymentRepo) Apply(_ context.Context, apartmentExpenseID string, fn payment.ApplyFunc) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.allocations[apartmentExpenseID]
	if !ok {
		return nil, expense.ErrAllocationNotFound
	}

	// fn trabalha sobre uma cópia; nada é gravado se ela falhar
	working := stored
	p, err := fn(&working)
	if err != nil {
		return nil, err
	}
	if p.IdempotencyKey != "" {
		for _, other := range r.s.payments {
			if other.IdempotencyKey == p.IdempotencyKey {
				return nil, payment.ErrDuplicateKey
			}
		}
	}

	r.s.payments[p.ID] = *p
	r.s.allocations[apartmentExpenseID] = working
	created := *p
	return &created, nil
}

func (r *paymentRepo) FindByID(_ context.Context, id string) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	return &p, nil
}

func (r *paymentRepo) FindByIdempotencyKey(_ context.Context, key string) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if key != "" && p.IdempotencyKey == key {
			return &p, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (r *paymentRepo) List(_ context.Context, f payment.Filter) ([]*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*payment.Payment
	for _, p := range r.s.payments {
		blockID, associationID, ownerID := r.s.apartmentBlock(p.ApartmentID)
		if matches(f.ApartmentID, p.ApartmentID) &&
			matches(f.BlockID, blockID) &&
			matches(f.AssociationID, associationID) &&
			matches(f.OwnerID, ownerID) {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PaymentDate.After(list[j].PaymentDate) })
	return list, nil
}
