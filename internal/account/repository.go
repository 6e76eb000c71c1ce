package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists accounts.
type Repository interface {
	Create(ctx context.Context, acct Account) (int64, error)
	FindByID(ctx context.Context, id int64) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
	Update(ctx context.Context, id int64, input UpdateInput) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed account repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account and returns the store-assigned id.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO accounts (name, email, password, balance, wallet_key, currency_symbol)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		acct.Name, acct.Email, acct.Password, acct.Balance, acct.WalletKey, acct.Currency).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

// FindByID fetches an account by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password, balance, wallet_key, currency_symbol, created_at
        FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// FindByEmail fetches an account by email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, email, password, balance, wallet_key, currency_symbol, created_at
        FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// Update applies the supplied fields only. The column list is built from the
// explicit optional fields, never from caller-provided keys.
func (r *PostgresRepository) Update(ctx context.Context, id int64, input UpdateInput) error {
	var (
		assignments []string
		args        []any
	)
	if input.Name != nil {
		args = append(args, *input.Name)
		assignments = append(assignments, fmt.Sprintf("name = $%d", len(args)))
	}
	if input.Email != nil {
		args = append(args, *input.Email)
		assignments = append(assignments, fmt.Sprintf("email = $%d", len(args)))
	}
	if input.Password != nil {
		args = append(args, *input.Password)
		assignments = append(assignments, fmt.Sprintf("password = $%d", len(args)))
	}

	if len(assignments) == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE accounts SET %s WHERE id = $%d", strings.Join(assignments, ", "), len(args))

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		acct      Account
		createdAt time.Time
	)
	if err := row.Scan(&acct.ID, &acct.Name, &acct.Email, &acct.Password, &acct.Balance,
		&acct.WalletKey, &acct.Currency, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acct.CreatedAt = createdAt.UTC()
	return acct, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
