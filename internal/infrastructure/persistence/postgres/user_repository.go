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

const userColumns = `id, email, first_name, last_name, phone, country_code, birthday,
	time_zone, note, description, picture_full_path, status, role, created_at, updated_at`

const userEmailConstraint = "users_email_key"

// UserRepository persists users in the users table. The primary key is the
// identity-provider id, inserted as-is.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a user repository backed by pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) FindAll(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	where, args := userWhere(filter)
	sql := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY id`
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
	return collectUsers(rows)
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	s := u.Snapshot()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (
			id, email, first_name, last_name, phone, country_code, birthday,
			time_zone, note, description, picture_full_path, status, role,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		s.ID, s.Email, s.FirstName, s.LastName, s.Phone, s.CountryCode, s.Birthday,
		s.TimeZone, s.Note, s.Description, s.PictureFullPath, string(s.Status), string(s.Role),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err, userEmailConstraint) {
		return domerrors.Conflict("user with email %q already exists", s.Email)
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	s := u.Snapshot()
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET
			email = $2, first_name = $3, last_name = $4, phone = $5, country_code = $6,
			birthday = $7, time_zone = $8, note = $9, description = $10,
			picture_full_path = $11, status = $12, role = $13, updated_at = $14
		WHERE id = $1`,
		s.ID, s.Email, s.FirstName, s.LastName, s.Phone, s.CountryCode,
		s.Birthday, s.TimeZone, s.Note, s.Description,
		s.PictureFullPath, string(s.Status), string(s.Role), s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, userEmailConstraint) {
			return domerrors.Conflict("user with email %q already exists", s.Email)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %q does not exist", s.ID)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %q does not exist", id)
	}
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *UserRepository) EmailExists(ctx context.Context, email string, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Count(ctx context.Context, filter ports.UserFilter) (int64, error) {
	where, args := userWhere(filter)
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&count)
	return count, err
}

func userWhere(filter ports.UserFilter) (string, []interface{}) {
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
			`(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)`, n, n, n))
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

func scanUser(row pgx.Row) (*domain.User, error) {
	var s domain.UserSnapshot
	var status, role string
	err := row.Scan(
		&s.ID, &s.Email, &s.FirstName, &s.LastName, &s.Phone, &s.CountryCode, &s.Birthday,
		&s.TimeZone, &s.Note, &s.Description, &s.PictureFullPath, &status, &role,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.Status = domain.UserStatus(status)
	s.Role = domain.UserRole(role)
	return domain.UserFromSnapshot(s)
}

func collectUsers(rows pgx.Rows) ([]*domain.User, error) {
	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var _ ports.UserRepository = (*UserRepository)(nil)
