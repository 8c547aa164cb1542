package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-condominio/internal/domain/apartment"
	"github.com/hugohenrick/erp-condominio/internal/domain/association"
	"github.com/hugohenrick/erp-condominio/internal/domain/block"
)

type associationRepo struct{ s *Store }

func (r *associationRepo) Create(_ context.Context, a *association.Association) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.associations[a.ID] = *a
	return nil
}

func (r *associationRepo) FindByID(_ context.Context, id string) (*association.Association, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.associations[id]
	if !ok {
		return nil, association.ErrNotFound
	}
	return r.view(a), nil
}

func (r *associationRepo) List(_ context.Context, ids []string) ([]*association.Association, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*association.Association
	for _, a := range r.s.associations {
		if inList(ids, a.ID) {
			list = append(list, r.view(a))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *associationRepo) Update(_ context.Context, a *association.Association) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.associations[a.ID]; !ok {
		return association.ErrNotFound
	}
	r.s.associations[a.ID] = *a
	return nil
}

func (r *associationRepo) view(a association.Association) *association.Association {
	a.BlocksCount, a.ApartmentsCount = 0, 0
	for _, b := range r.s.blocks {
		if b.AssociationID == a.ID {
			a.BlocksCount++
		}
	}
	for _, ap := range r.s.apartments {
		if r.s.associationOfBlock(ap.BlockID) == a.ID {
			a.ApartmentsCount++
		}
	}
	return &a
}

type blockRepo struct{ s *Store }

func (r *blockRepo) Create(_ context.Context, b *block.Block) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.associations[b.AssociationID]; !ok {
		return association.ErrNotFound
	}
	r.s.blocks[b.ID] = *b
	return nil
}

func (r *blockRepo) FindByID(_ context.Context, id string) (*block.Block, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.blocks[id]
	if !ok {
		return nil, block.ErrNotFound
	}
	return r.view(b), nil
}

func (r *blockRepo) List(_ context.Context, f block.Filter) ([]*block.Block, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*block.Block
	for _, b := range r.s.blocks {
		if matches(f.AssociationID, b.AssociationID) && matches(f.BlockID, b.ID) && inList(f.IDs, b.ID) {
			list = append(list, r.view(b))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *blockRepo) Update(_ context.Context, b *block.Block) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blocks[b.ID]; !ok {
		return block.ErrNotFound
	}
	r.s.blocks[b.ID] = *b
	return nil
}

func (r *blockRepo) view(b block.Block) *block.Block {
	b.AssociationName = r.s.associations[b.AssociationID].Name
	b.ApartmentsCount = 0
	for _, ap := range r.s.apartments {
		if ap.BlockID == b.ID {
			b.ApartmentsCount++
		}
	}
	return &b
}

type apartmentRepo struct{ s *Store }

func (r *apartmentRepo) Create(_ context.Context, a *apartment.Apartment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blocks[a.BlockID]; !ok {
		return block.ErrNotFound
	}
	if r.duplicate(a) {
		return apartment.ErrDuplicateNumber
	}
	r.s.apartments[a.ID] = *a
	return nil
}

func (r *apartmentRepo) FindByID(_ context.Context, id string) (*apartment.Apartment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.apartments[id]
	if !ok {
		return nil, apartment.ErrNotFound
	}
	return r.view(a), nil
}

func (r *apartmentRepo) List(_ context.Context, f apartment.Filter) ([]*apartment.Apartment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*apartment.Apartment
	for _, a := range r.s.apartments {
		if matches(f.BlockID, a.BlockID) &&
			matches(f.AssociationID, r.s.associationOfBlock(a.BlockID)) &&
			matches(f.OwnerID, a.OwnerID) {
			list = append(list, r.view(a))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *apartmentRepo) Update(_ context.Context, a *apartment.Apartment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.apartments[a.ID]; !ok {
		return apartment.ErrNotFound
	}
	if r.duplicate(a) {
		return apartment.ErrDuplicateNumber
	}
	r.s.apartments[a.ID] = *a
	return nil
}

func (r *apartmentRepo) duplicate(a *apartment.Apartment) bool {
	for _, other := range r.s.apartments {
		if other.ID != a.ID && other.BlockID == a.BlockID && other.Number == a.Number {
			return true
		}
	}
	return false
}

func (r *apartmentRepo) view(a apartment.Apartment) *apartment.Apartment {
	a.BlockName = r.s.blocks[a.BlockID].Name
	a.OwnerName = r.s.userName(a.OwnerID)
	return &a
}
