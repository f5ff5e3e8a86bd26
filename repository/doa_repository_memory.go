package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"zakat-tracker/domain"
)

type DoaRepositoryMemory struct {
	mu        sync.RWMutex
	doas      map[string]domain.Doa
	reports   map[string][]domain.Report
	templates []domain.Template
}

func NewDoaRepositoryMemory(doas []domain.Doa, templates []domain.Template) *DoaRepositoryMemory {
	r := &DoaRepositoryMemory{
		doas:      make(map[string]domain.Doa, len(doas)),
		reports:   make(map[string][]domain.Report),
		templates: make([]domain.Template, len(templates)),
	}
	for _, d := range doas {
		r.doas[d.ID] = d.Clone()
	}
	copy(r.templates, templates)
	return r
}

func (r *DoaRepositoryMemory) Get(_ context.Context, id string) (domain.Doa, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.doas[id]
	if !ok {
		return domain.Doa{}, fmt.Errorf("doa %s: %w", id, domain.ErrNotFound)
	}
	return d.Clone(), nil
}

// List returns every stored doa, newest first.
func (r *DoaRepositoryMemory) List(_ context.Context) ([]domain.Doa, error) {
	r.mu.RLock()
	out := make([]domain.Doa, 0, len(r.doas))
	for _, d := range r.doas {
		out = append(out, d.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *DoaRepositoryMemory) Create(_ context.Context, doa domain.Doa) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.doas[doa.ID]; exists {
		return fmt.Errorf("doa %s already exists", doa.ID)
	}
	r.doas[doa.ID] = doa.Clone()
	return nil
}

func (r *DoaRepositoryMemory) Update(
	_ context.Context,
	id string,
	fn func(*domain.Doa) error,
) (domain.Doa, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.doas[id]
	if !ok {
		return domain.Doa{}, fmt.Errorf("doa %s: %w", id, domain.ErrNotFound)
	}
	updated := current.Clone()
	if err := fn(&updated); err != nil {
		return domain.Doa{}, err
	}
	r.doas[id] = updated
	return updated.Clone(), nil
}

func (r *DoaRepositoryMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doas[id]; !ok {
		return fmt.Errorf("doa %s: %w", id, domain.ErrNotFound)
	}
	delete(r.doas, id)
	delete(r.reports, id)
	return nil
}

func (r *DoaRepositoryMemory) AddReport(_ context.Context, report domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doas[report.DoaID]; !ok {
		return fmt.Errorf("doa %s: %w", report.DoaID, domain.ErrNotFound)
	}
	r.reports[report.DoaID] = append(r.reports[report.DoaID], report)
	return nil
}

func (r *DoaRepositoryMemory) Reports(_ context.Context, doaID string) ([]domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Report, len(r.reports[doaID]))
	copy(out, r.reports[doaID])
	return out, nil
}

func (r *DoaRepositoryMemory) Templates(_ context.Context) ([]domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Template, len(r.templates))
	copy(out, r.templates)
	return out, nil
}

type UserRepositoryMemory struct {
	mu    sync.RWMutex
	order []string
	users map[string]domain.User
}

func NewUserRepositoryMemory(users []domain.User) *UserRepositoryMemory {
	r := &UserRepositoryMemory{users: make(map[string]domain.User, len(users))}
	for _, u := range users {
		r.order = append(r.order, u.ID)
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepositoryMemory) Get(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

// List returns users in seed order.
func (r *UserRepositoryMemory) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}
