package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

// UserRepository stores user snapshots keyed by the external id.
type UserRepository struct {
	mu   sync.Mutex
	rows map[string]domain.UserSnapshot
}

// NewUserRepository returns an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{rows: make(map[string]domain.UserSnapshot)}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return domain.UserFromSnapshot(s)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.Email == email {
			return domain.UserFromSnapshot(s)
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, id := range ids {
		if s, ok := r.rows[id]; ok {
			u, err := domain.UserFromSnapshot(s)
			if err != nil {
				return nil, err
			}
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *UserRepository) FindAll(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matches := paginate(r.matching(filter), filter.Limit, filter.Offset)
	out := make([]*domain.User, 0, len(matches))
	for _, s := range matches {
		u, err := domain.UserFromSnapshot(s)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := u.Snapshot()
	if _, ok := r.rows[s.ID]; ok {
		return domerrors.Conflict("user with id %q already exists", s.ID)
	}
	for _, row := range r.rows {
		if row.Email == s.Email {
			return domerrors.Conflict("user with email %q already exists", s.Email)
		}
	}
	r.rows[s.ID] = s
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := u.Snapshot()
	if _, ok := r.rows[s.ID]; !ok {
		return fmt.Errorf("user %q does not exist", s.ID)
	}
	for id, row := range r.rows {
		if id != s.ID && row.Email == s.Email {
			return domerrors.Conflict("user with email %q already exists", s.Email)
		}
	}
	r.rows[s.ID] = s
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("user %q does not exist", id)
	}
	delete(r.rows, id)
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.rows {
		if row.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) Count(ctx context.Context, filter ports.UserFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *UserRepository) matching(filter ports.UserFilter) []domain.UserSnapshot {
	var out []domain.UserSnapshot
	for _, s := range r.rows {
		if userMatches(s, filter) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func userMatches(s domain.UserSnapshot, filter ports.UserFilter) bool {
	if len(filter.Statuses) > 0 {
		found := false
		for _, st := range filter.Statuses {
			if s.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(s.FirstName), q) &&
			!strings.Contains(strings.ToLower(s.LastName), q) &&
			!strings.Contains(strings.ToLower(s.Email), q) {
			return false
		}
	}
	if filter.CreatedFrom != nil && s.CreatedAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && s.CreatedAt.After(*filter.CreatedTo) {
		return false
	}
	return true
}

var _ ports.UserRepository = (*UserRepository)(nil)
