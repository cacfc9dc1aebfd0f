package ports

import (
	"context"
	"time"

	"github.com/lehi10/tuagenda-sub000/internal/domain"
)

// BusinessFilter narrows FindAll/Count. FindAll and Count with the same
// filter are consistent: Count applies the same predicate and ignores
// Limit/Offset.
type BusinessFilter struct {
	// Statuses restricts results to the given statuses. Empty means all.
	Statuses []domain.BusinessStatus
	// Search matches case-insensitively against title, slug, email and city.
	Search string
	// CreatedFrom/CreatedTo bound the creation time (inclusive). Nil means
	// unbounded.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	// Limit caps the page size; 0 means the adapter default. Offset skips
	// rows for pagination.
	Limit  int
	Offset int
}

// UserFilter narrows user FindAll/Count. Search matches first name, last
// name and email.
type UserFilter struct {
	Statuses    []domain.UserStatus
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// BusinessRepository defines persistence for businesses. Lookups return
// nil, nil when the row is missing; errors are reserved for storage
// failures. Create and Update surface uniqueness violations on slug as a
// conflict error so the storage-level constraint backs up the use-case
// check.
type BusinessRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Business, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Business, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*domain.Business, error)
	FindAll(ctx context.Context, filter BusinessFilter) ([]*domain.Business, error)
	// Create persists a fresh business and returns it with the assigned id.
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// SlugExists reports whether slug is taken by a business other than
	// excludeID. Pass 0 to exclude nothing.
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Count(ctx context.Context, filter BusinessFilter) (int64, error)
}

// UserRepository defines persistence for users. Same conventions as
// BusinessRepository, with string ids and email in place of slug.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	// EmailExists reports whether email is taken by a user other than
	// excludeID. Pass "" to exclude nothing.
	EmailExists(ctx context.Context, email string, excludeID string) (bool, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
}
