package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/hugohenrick/erp-condominio/internal/domain/user"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u) {
		return user.ErrDuplicateEmail
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *userRepo) List(_ context.Context, f user.Filter) ([]*user.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(f.Search))
	var all []*user.User
	for _, u := range r.s.users {
		if !matches(f.AssociationID, u.AssociationID) || !matches(f.BlockID, u.BlockID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) {
			continue
		}
		u := u
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].LastName != all[j].LastName {
			return all[i].LastName < all[j].LastName
		}
		return all[i].FirstName < all[j].FirstName
	})

	total := len(all)
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	start := f.Offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *userRepo) Update(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	if r.emailTaken(u) {
		return user.ErrDuplicateEmail
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) emailTaken(u *user.User) bool {
	for _, other := range r.s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return true
		}
	}
	return false
}
