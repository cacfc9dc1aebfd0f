package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

const businessColumns = `id, slug, title, email, phone, website, address, city, country, state,
	postal_code, latitude, longitude, domain, logo, cover_image, description,
	time_zone, locale, currency, status, created_at, updated_at`

const businessSlugConstraint = "businesses_slug_key"

// BusinessRepository persists businesses in the businesses table.
type BusinessRepository struct {
	pool *pgxpool.Pool
}

// NewBusinessRepository returns a business repository backed by pool.
func NewBusinessRepository(pool *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{pool: pool}
}

func (r *BusinessRepository) FindByID(ctx context.Context, id int64) (*domain.Business, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
	return scanBusiness(row)
}

func (r *BusinessRepository) FindBySlug(ctx context.Context, slug string) (*domain.Business, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE slug = $1`, slug)
	return scanBusiness(row)
}

func (r *BusinessRepository) FindByIDs(ctx context.Context, ids []int64) ([]*domain.Business, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBusinesses(rows)
}

func (r *BusinessRepository) FindAll(ctx context.Context, filter ports.BusinessFilter) ([]*domain.Business, error) {
	where, args := businessWhere(filter)
	sql := `SELECT ` + businessColumns + ` FROM businesses` + where + ` ORDER BY id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		sql += fmt.Sprintf(` OFFSET $%d`, len(args))
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBusinesses(rows)
}

func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	s := b.Snapshot()
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO businesses (
			slug, title, email, phone, website, address, city, country, state,
			postal_code, latitude, longitude, domain, logo, cover_image, description,
			time_zone, locale, currency, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		RETURNING id`,
		s.Slug, s.Title, s.Email, s.Phone, s.Website, s.Address, s.City, s.Country, s.State,
		s.PostalCode, s.Latitude, s.Longitude, s.Domain, s.Logo, s.CoverImage, s.Description,
		s.TimeZone, s.Locale, s.Currency, string(s.Status), s.CreatedAt, s.UpdatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, businessSlugConstraint) {
			return nil, domerrors.Conflict("business with slug %q already exists", s.Slug)
		}
		return nil, err
	}
	s.ID = id
	return domain.BusinessFromSnapshot(s)
}

func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	s := b.Snapshot()
	tag, err := r.pool.Exec(ctx, `
		UPDATE businesses SET
			slug = $2, title = $3, email = $4, phone = $5, website = $6, address = $7,
			city = $8, country = $9, state = $10, postal_code = $11, latitude = $12,
			longitude = $13, domain = $14, logo = $15, cover_image = $16, description = $17,
			time_zone = $18, locale = $19, currency = $20, status = $21, updated_at = $22
		WHERE id = $1`,
		s.ID, s.Slug, s.Title, s.Email, s.Phone, s.Website, s.Address,
		s.City, s.Country, s.State, s.PostalCode, s.Latitude,
		s.Longitude, s.Domain, s.Logo, s.CoverImage, s.Description,
		s.TimeZone, s.Locale, s.Currency, string(s.Status), s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, businessSlugConstraint) {
			return domerrors.Conflict("business with slug %q already exists", s.Slug)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("business %d does not exist", s.ID)
	}
	return nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("business %d does not exist", id)
	}
	return nil
}

func (r *BusinessRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *BusinessRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM businesses WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *BusinessRepository) Count(ctx context.Context, filter ports.BusinessFilter) (int64, error) {
	where, args := businessWhere(filter)
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM businesses`+where, args...).Scan(&count)
	return count, err
}

// businessWhere builds the WHERE clause shared by FindAll and Count so the
// two stay consistent for identical filters.
func businessWhere(filter ports.BusinessFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, statuses)
		conds = append(conds, fmt.Sprintf(`status = ANY($%d)`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(title ILIKE $%d OR slug ILIKE $%d OR email ILIKE $%d OR city ILIKE $%d)`, n, n, n, n))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		conds = append(conds, fmt.Sprintf(`created_at >= $%d`, len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		conds = append(conds, fmt.Sprintf(`created_at <= $%d`, len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var s domain.BusinessSnapshot
	var status string
	err := row.Scan(
		&s.ID, &s.Slug, &s.Title, &s.Email, &s.Phone, &s.Website, &s.Address, &s.City,
		&s.Country, &s.State, &s.PostalCode, &s.Latitude, &s.Longitude, &s.Domain,
		&s.Logo, &s.CoverImage, &s.Description, &s.TimeZone, &s.Locale, &s.Currency,
		&status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.Status = domain.BusinessStatus(status)
	return domain.BusinessFromSnapshot(s)
}

func collectBusinesses(rows pgx.Rows) ([]*domain.Business, error) {
	var out []*domain.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ ports.BusinessRepository = (*BusinessRepository)(nil)
