// Package memory implements the repository ports on in-process maps. It is
// the dev-mode fallback when no database is configured and the fake used by
// use-case tests. It enforces the same uniqueness rules as the Postgres
// schema so conflicts surface identically.
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

// BusinessRepository stores business snapshots keyed by id.
type BusinessRepository struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]domain.BusinessSnapshot
}

// NewBusinessRepository returns an empty in-memory business repository.
func NewBusinessRepository() *BusinessRepository {
	return &BusinessRepository{rows: make(map[int64]domain.BusinessSnapshot)}
}

func (r *BusinessRepository) FindByID(ctx context.Context, id int64) (*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return domain.BusinessFromSnapshot(s)
}

func (r *BusinessRepository) FindBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.Slug == slug {
			return domain.BusinessFromSnapshot(s)
		}
	}
	return nil, nil
}

func (r *BusinessRepository) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Business
	for _, id := range ids {
		if s, ok := r.rows[id]; ok {
			b, err := domain.BusinessFromSnapshot(s)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *BusinessRepository) FindAll(ctx context.Context, filter ports.BusinessFilter) ([]*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matches := r.matching(filter)
	matches = paginate(matches, filter.Limit, filter.Offset)
	out := make([]*domain.Business, 0, len(matches))
	for _, s := range matches {
		b, err := domain.BusinessFromSnapshot(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := b.Snapshot()
	for _, row := range r.rows {
		if row.Slug == s.Slug {
			return nil, domerrors.Conflict("business with slug %q already exists", s.Slug)
		}
	}
	r.seq++
	s.ID = r.seq
	r.rows[s.ID] = s
	return domain.BusinessFromSnapshot(s)
}

func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := b.Snapshot()
	if _, ok := r.rows[s.ID]; !ok {
		return fmt.Errorf("business %d does not exist", s.ID)
	}
	for id, row := range r.rows {
		if id != s.ID && row.Slug == s.Slug {
			return domerrors.Conflict("business with slug %q already exists", s.Slug)
		}
	}
	r.rows[s.ID] = s
	return nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("business %d does not exist", id)
	}
	delete(r.rows, id)
	return nil
}

func (r *BusinessRepository) Exists(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	return ok, nil
}

func (r *BusinessRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, row := range r.rows {
		if row.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *BusinessRepository) Count(ctx context.Context, filter ports.BusinessFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

// matching applies everything but Limit/Offset, keeping FindAll and Count
// consistent. Caller holds the lock.
func (r *BusinessRepository) matching(filter ports.BusinessFilter) []domain.BusinessSnapshot {
	var out []domain.BusinessSnapshot
	for _, s := range r.rows {
		if businessMatches(s, filter) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func businessMatches(s domain.BusinessSnapshot, filter ports.BusinessFilter) bool {
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
		if !strings.Contains(strings.ToLower(s.Title), q) &&
			!strings.Contains(strings.ToLower(s.Slug), q) &&
			!strings.Contains(strings.ToLower(s.Email), q) &&
			!strings.Contains(strings.ToLower(s.City), q) {
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

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

var _ ports.BusinessRepository = (*BusinessRepository)(nil)
