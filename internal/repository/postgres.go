package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"PROFILEHUB_BACK-END/internal/models"
)

const (
	// uniqueEmailConstraint is declared explicitly in the DDL so the name is
	// stable across environments.
	uniqueEmailConstraint = "unique_email"

	defaultPage     = 1
	defaultPageSize = 10

	profileColumns = "id, name, age, email, phone_number, date_of_birth, gender, created_at"
)

// PostgresProfileRepository implements ProfileRepository over a pgx pool.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository instance
func NewPostgresProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

// EnsureSchema creates the profiles table when it does not exist yet.
func (r *PostgresProfileRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
create table if not exists profiles (
	id serial primary key,
	name varchar(255) not null,
	age integer not null,
	email varchar(255) not null constraint unique_email unique,
	phone_number varchar(20) not null,
	date_of_birth date not null,
	gender varchar(10) not null,
	created_at timestamp default current_timestamp
)`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure profiles schema: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	const q = `
insert into profiles (name, age, email, phone_number, date_of_birth, gender)
values ($1, $2, $3, $4, $5, $6)
returning ` + profileColumns

	row := r.pool.QueryRow(ctx, q, p.Name, p.Age, p.Email, p.PhoneNumber, p.DateOfBirth, p.Gender)
	out, err := scanProfile(row)
	if err != nil {
		return nil, translateError(err, "insert profile")
	}
	return out, nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	const q = `select ` + profileColumns + ` from profiles where id = $1`

	out, err := scanProfile(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, translateError(err, "select profile")
	}
	return out, nil
}

func (r *PostgresProfileRepository) GetRecent(ctx context.Context) (*models.Profile, error) {
	const q = `select ` + profileColumns + ` from profiles order by id desc limit 1`

	out, err := scanProfile(r.pool.QueryRow(ctx, q))
	if err != nil {
		return nil, translateError(err, "select recent profile")
	}
	return out, nil
}

func (r *PostgresProfileRepository) List(ctx context.Context, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	var total int
	if err := r.pool.QueryRow(ctx, `select count(*) from profiles`).Scan(&total); err != nil {
		return nil, translateError(err, "count profiles")
	}

	const q = `select ` + profileColumns + ` from profiles order by id desc limit $1 offset $2`

	rows, err := r.pool.Query(ctx, q, pageSize, offset)
	if err != nil {
		return nil, translateError(err, "select profiles page")
	}
	defer rows.Close()

	items := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, translateError(err, "scan profile row")
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate profile rows")
	}

	return &ListResult{Items: items, Total: total}, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, id int64, p *models.Profile) (*models.Profile, error) {
	const q = `
update profiles
set name = $1, age = $2, email = $3, phone_number = $4, date_of_birth = $5, gender = $6
where id = $7
returning ` + profileColumns

	row := r.pool.QueryRow(ctx, q, p.Name, p.Age, p.Email, p.PhoneNumber, p.DateOfBirth, p.Gender, id)
	out, err := scanProfile(row)
	if err != nil {
		return nil, translateError(err, "update profile")
	}
	return out, nil
}

func (r *PostgresProfileRepository) Delete(ctx context.Context, id int64) (*models.Profile, error) {
	const q = `delete from profiles where id = $1 returning ` + profileColumns

	out, err := scanProfile(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, translateError(err, "delete profile")
	}
	return out, nil
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Email, &p.PhoneNumber, &p.DateOfBirth, &p.Gender, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// translateError maps driver errors onto the repository's sentinel errors.
// 23505 on the named email constraint becomes ErrDuplicateEmail; raw driver
// text stays wrapped for debugging and never reaches clients directly.
func translateError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueEmailConstraint {
		return ErrDuplicateEmail
	}
	return fmt.Errorf("%s: %w", op, err)
}
