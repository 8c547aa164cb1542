package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-condominio/internal/domain/announcement"
	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
	"github.com/hugohenrick/erp-condominio/internal/domain/dashboard"
	"github.com/hugohenrick/erp-condominio/internal/domain/expense"
	"github.com/hugohenrick/erp-condominio/internal/domain/meter"
	"github.com/hugohenrick/erp-condominio/internal/domain/repair"
	"github.com/shopspring/decimal"
)

type meterRepo struct{ s *Store }

func (r *meterRepo) Create(_ context.Context, m *meter.Reading) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.apartments[m.ApartmentID]; !ok {
		return apartment.ErrNotFound
	}
	stored := *m
	stored.ApartmentNumber = ""
	r.s.readings[m.ID] = stored
	return nil
}

func (r *meterRepo) FindByID(_ context.Context, id string) (*meter.Reading, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.readings[id]
	if !ok {
		return nil, meter.ErrNotFound
	}
	return r.view(m), nil
}

func (r *meterRepo) FindLatest(_ context.Context, apartmentID string, meterType meter.Type) (*meter.Reading, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *meter.Reading
	for _, m := range r.s.readings {
		if m.ApartmentID != apartmentID || m.MeterType != meterType {
			continue
		}
		if latest == nil || m.ReadingDate.After(latest.ReadingDate) ||
			(m.ReadingDate.Equal(latest.ReadingDate) && m.CreatedAt.After(latest.CreatedAt)) {
			latest = r.view(m)
		}
	}
	if latest == nil {
		return nil, meter.ErrNotFound
	}
	return latest, nil
}

func (r *meterRepo) List(_ context.Context, f meter.Filter) ([]*meter.Reading, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*meter.Reading
	for _, m := range r.s.readings {
		blockID, associationID, ownerID := r.s.apartmentBlock(m.ApartmentID)
		if matches(f.ApartmentID, m.ApartmentID) &&
			matches(f.BlockID, blockID) &&
			matches(f.AssociationID, associationID) &&
			matches(f.OwnerID, ownerID) &&
			matches(string(f.MeterType), string(m.MeterType)) {
			list = append(list, r.view(m))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ReadingDate.Equal(list[j].ReadingDate) {
			return list[i].ReadingDate.After(list[j].ReadingDate)
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *meterRepo) view(m meter.Reading) *meter.Reading {
	m.ApartmentNumber = r.s.apartments[m.ApartmentID].Number
	return &m
}

type announcementRepo struct{ s *Store }

func (r *announcementRepo) Create(_ context.Context, a *announcement.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blocks[a.BlockID]; !ok {
		return block.ErrNotFound
	}
	stored := *a
	stored.AuthorName, stored.BlockName = "", ""
	r.s.announcements[a.ID] = stored
	return nil
}

func (r *announcementRepo) FindByID(_ context.Context, id string) (*announcement.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.announcements[id]
	if !ok {
		return nil, announcement.ErrNotFound
	}
	return r.view(a), nil
}

func (r *announcementRepo) List(_ context.Context, f announcement.Filter) ([]*announcement.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*announcement.Announcement
	for _, a := range r.s.announcements {
		if matches(f.BlockID, a.BlockID) && matches(f.AssociationID, r.s.associationOfBlock(a.BlockID)) {
			list = append(list, r.view(a))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *announcementRepo) view(a announcement.Announcement) *announcement.Announcement {
	a.AuthorName = r.s.userName(a.AuthorID)
	a.BlockName = r.s.blocks[a.BlockID].Name
	return &a
}

type repairRepo struct{ s *Store }

func (r *repairRepo) Create(_ context.Context, req *repair.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.apartments[req.ApartmentID]; !ok {
		return apartment.ErrNotFound
	}
	stored := *req
	stored.TenantName, stored.ApartmentNumber = "", ""
	r.s.repairs[req.ID] = stored
	return nil
}

func (r *repairRepo) FindByID(_ context.Context, id string) (*repair.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	req, ok := r.s.repairs[id]
	if !ok {
		return nil, repair.ErrNotFound
	}
	return r.view(req), nil
}

func (r *repairRepo) List(_ context.Context, f repair.Filter) ([]*repair.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*repair.Request
	for _, req := range r.s.repairs {
		if matches(f.BlockID, req.BlockID) &&
			matches(f.ApartmentID, req.ApartmentID) &&
			matches(f.AssociationID, r.s.associationOfBlock(req.BlockID)) &&
			matches(f.TenantID, req.TenantID) &&
			matches(string(f.Status), string(req.Status)) {
			list = append(list, r.view(req))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *repairRepo) Update(_ context.Context, req *repair.Request) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.repairs[req.ID]; !ok {
		return repair.ErrNotFound
	}
	stored := *req
	stored.TenantName, stored.ApartmentNumber = "", ""
	r.s.repairs[req.ID] = stored
	return nil
}

func (r *repairRepo) view(req repair.Request) *repair.Request {
	req.TenantName = r.s.userName(req.TenantID)
	req.ApartmentNumber = r.s.apartments[req.ApartmentID].Number
	return &req
}

type dashboardRepo struct{ s *Store }

func (r *dashboardRepo) Counts(_ context.Context, scope dashboard.Scope) (dashboard.Counts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := dashboard.Counts{Revenue: decimal.Zero}
	inScope := func(apartmentID string) bool {
		blockID, associationID, ownerID := r.s.apartmentBlock(apartmentID)
		return matches(scope.AssociationID, associationID) &&
			matches(scope.BlockID, blockID) &&
			matches(scope.OwnerID, ownerID)
	}

	associations := map[string]bool{}
	blocks := map[string]bool{}
	for _, b := range r.s.blocks {
		if !matches(scope.AssociationID, b.AssociationID) || !matches(scope.BlockID, b.ID) {
			continue
		}
		if scope.OwnerID == "" {
			blocks[b.ID] = true
			associations[b.AssociationID] = true
		}
	}
	if scope.OwnerID == "" && scope.BlockID == "" {
		for _, a := range r.s.associations {
			if matches(scope.AssociationID, a.ID) {
				associations[a.ID] = true
			}
		}
	}

	for _, ap := range r.s.apartments {
		if !inScope(ap.ID) {
			continue
		}
		c.Apartments++
		if ap.IsOccupied() {
			c.OccupiedApartments++
		}
		blocks[ap.BlockID] = true
		associations[r.s.associationOfBlock(ap.BlockID)] = true
	}
	c.Associations = len(associations)
	c.Blocks = len(blocks)

	expenses := map[string]bool{}
	for _, e := range r.s.expenses {
		if scope.OwnerID == "" &&
			matches(scope.AssociationID, r.s.associationOfBlock(e.BlockID)) &&
			matches(scope.BlockID, e.BlockID) {
			expenses[e.ID] = true
		}
	}
	for _, a := range r.s.allocations {
		if !inScope(a.ApartmentID) {
			continue
		}
		expenses[a.ExpenseID] = true
		if a.Status != expense.StatusPaid {
			c.PendingAllocations++
		}
	}
	c.Expenses = len(expenses)

	for _, req := range r.s.repairs {
		if inScope(req.ApartmentID) && req.Status.IsOpen() {
			c.OpenRepairs++
		}
	}
	for _, p := range r.s.payments {
		if inScope(p.ApartmentID) {
			c.Revenue = c.Revenue.Add(p.Amount)
		}
	}
	return c, nil
}
