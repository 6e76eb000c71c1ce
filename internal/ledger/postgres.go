package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists balances and transaction records in PostgreSQL.
// Mutations lock the touched account rows with SELECT ... FOR UPDATE for the
// duration of the transaction, so the funds check and the balance writes act
// on one snapshot and concurrent mutations serialize per account.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed ledger store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Deposit credits the account and appends the matching record in one transaction.
func (s *PostgresStore) Deposit(ctx context.Context, accountID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, storageErr(err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := lockBalance(ctx, tx, accountID); err != nil {
		return 0, err
	}

	var newBalance int64
	if err := tx.QueryRow(ctx, `UPDATE accounts SET balance = balance + $2 WHERE id = $1 RETURNING balance`,
		accountID, amount).Scan(&newBalance); err != nil {
		return 0, storageErr(err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (sender_id, receiver_id, amount, status)
        VALUES ($1, $1, $2, $3)`, accountID, amount, StatusSuccess); err != nil {
		return 0, storageErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storageErr(err)
	}

	return newBalance, nil
}

// Transfer moves funds between two accounts and appends one record, all in a
// single transaction. Rows are locked in ascending id order so that two
// transfers touching the same pair in opposite directions cannot deadlock.
func (s *PostgresStore) Transfer(ctx context.Context, senderID, recipientID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, storageErr(err)
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if senderID == recipientID {
		balance, err := lockBalance(ctx, tx, senderID)
		if err != nil {
			return 0, err
		}
		if balance < amount {
			return 0, ErrInsufficientFunds
		}
		if _, err := tx.Exec(ctx, `INSERT INTO transactions (sender_id, receiver_id, amount, status)
            VALUES ($1, $2, $3, $4)`, senderID, recipientID, amount, StatusSuccess); err != nil {
			return 0, storageErr(err)
		}
		if err := tx.Commit(ctx); err != nil {
			return 0, storageErr(err)
		}
		return balance, nil
	}

	first, second := senderID, recipientID
	if second < first {
		first, second = second, first
	}

	firstBalance, err := lockBalance(ctx, tx, first)
	if err != nil {
		return 0, err
	}
	secondBalance, err := lockBalance(ctx, tx, second)
	if err != nil {
		return 0, err
	}

	senderBalance := firstBalance
	if senderID == second {
		senderBalance = secondBalance
	}
	if senderBalance < amount {
		return 0, ErrInsufficientFunds
	}

	var newSenderBalance int64
	if err := tx.QueryRow(ctx, `UPDATE accounts SET balance = balance - $2 WHERE id = $1 RETURNING balance`,
		senderID, amount).Scan(&newSenderBalance); err != nil {
		return 0, storageErr(err)
	}
	if _, err := tx.Exec(ctx, `UPDATE accounts SET balance = balance + $2 WHERE id = $1`,
		recipientID, amount); err != nil {
		return 0, storageErr(err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (sender_id, receiver_id, amount, status)
        VALUES ($1, $2, $3, $4)`, senderID, recipientID, amount, StatusSuccess); err != nil {
		return 0, storageErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storageErr(err)
	}

	return newSenderBalance, nil
}

// History returns the account's records, newest first.
func (s *PostgresStore) History(ctx context.Context, accountID int64) ([]Record, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`,
		accountID).Scan(&exists); err != nil {
		return nil, storageErr(err)
	}
	if !exists {
		return nil, ErrAccountNotFound
	}

	rows, err := s.db.Query(ctx, `SELECT id, sender_id, receiver_id, amount, status, created_at
        FROM transactions
        WHERE sender_id = $1 OR receiver_id = $1
        ORDER BY created_at DESC, id DESC`, accountID)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.SenderID, &r.ReceiverID, &r.Amount, &r.Status, &r.CreatedAt); err != nil {
			return nil, storageErr(err)
		}
		r.CreatedAt = r.CreatedAt.UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	return records, nil
}

func lockBalance(ctx context.Context, tx pgx.Tx, accountID int64) (int64, error) {
	var balance int64
	if err := tx.QueryRow(ctx, `SELECT balance FROM accounts WHERE id = $1 FOR UPDATE`,
		accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, storageErr(err)
	}
	return balance, nil
}

// storageErr translates store failures into the ledger error taxonomy.
// Serialization and deadlock aborts are safe to retry: the transaction never
// reached its commit point.
func storageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return ErrAborted
		case "23514":
			// Balance check constraint is the last line of defence; the
			// locked funds check should fail first.
			return ErrInsufficientFunds
		}
	}
	return err
}
