package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BolivianProgrammer/RazorPedidos/internal/domain/account"
)

type UserRepository struct {
	q querier
}

func NewUserRepository(q querier) *UserRepository {
	return &UserRepository{q: q}
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*account.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1;`, id)
	return scanUserRow(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*account.User, error) {
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	return scanUserRow(row)
}

func (r *UserRepository) List(ctx context.Context) ([]account.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []account.User
	for rows.Next() {
		var u account.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, u *account.User) error {
	const query = `
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	err := r.q.QueryRow(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return account.ErrEmailTaken
	}
	return err
}

func (r *UserRepository) Update(ctx context.Context, u *account.User) error {
	const query = `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, role = $4, updated_at = $5
		WHERE id = $6;
	`
	tag, err := r.q.Exec(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.UpdatedAt,
		u.ID,
	)
	if isUniqueViolation(err) {
		return account.ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return account.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1;`, id)
	return err
}

func scanUserRow(row pgx.Row) (*account.User, error) {
	var u account.User
	err := scanUser(row, &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUser(row pgx.Row, u *account.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// 23505 is unique_violation; the only unique constraint on users is email.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
