package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rublebank/rubank/internal/model"
)

// ErrInsufficientFunds is reported when the guarded debit matches no
// row, i.e. the sender's balance is below the transfer amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

type TransactionRepository interface {
	History(ctx context.Context, userID int64, limit int) ([]*model.TransactionRecord, error)
	Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, description string) (int64, decimal.Decimal, error)
}

type transactionRepository struct {
	db *Database
}

func NewTransactionRepository(db *Database) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) History(ctx context.Context, userID int64, limit int) ([]*model.TransactionRecord, error) {
	query := `SELECT t.id, t.amount, t.transaction_type, t.description, t.created_at,
                     t.from_user_id, u_from.username, u_from.full_name,
                     t.to_user_id, u_to.username, u_to.full_name
              FROM transactions t
              LEFT JOIN users u_from ON t.from_user_id = u_from.id
              LEFT JOIN users u_to ON t.to_user_id = u_to.id
              WHERE t.from_user_id = $1 OR t.to_user_id = $1
              ORDER BY t.created_at DESC
              LIMIT $2`
	rows, err := r.db.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.TransactionRecord
	for rows.Next() {
		var (
			rec          model.TransactionRecord
			fromID, toID sql.NullInt64
			fromUsername sql.NullString
			fromFullName sql.NullString
			toUsername   sql.NullString
			toFullName   sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Amount, &rec.Type, &rec.Description, &rec.Date,
			&fromID, &fromUsername, &fromFullName,
			&toID, &toUsername, &toFullName); err != nil {
			return nil, err
		}
		if fromID.Valid {
			rec.FromUser = &model.UserRef{ID: fromID.Int64, Username: fromUsername.String, FullName: fromFullName.String}
		}
		if toID.Valid {
			rec.ToUser = &model.UserRef{ID: toID.Int64, Username: toUsername.String, FullName: toFullName.String}
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Transfer debits the sender, credits the recipient, and records the
// transaction in a single database transaction. The debit is guarded by
// the balance check, so two concurrent transfers cannot overdraw.
func (r *transactionRepository) Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, description string) (int64, decimal.Decimal, error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance - $1 WHERE id = $2 AND balance >= $1`,
		amount, fromUserID)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to debit sender: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, decimal.Zero, err
	}
	if affected == 0 {
		return 0, decimal.Zero, ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`,
		amount, toUserID); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to credit recipient: %w", err)
	}

	var txID int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO transactions (from_user_id, to_user_id, amount, transaction_type, description)
         VALUES ($1, $2, $3, 'transfer', $4)
         RETURNING id`,
		fromUserID, toUserID, amount, description).Scan(&txID); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to record transaction: %w", err)
	}

	var newBalance decimal.Decimal
	if err := tx.QueryRowContext(ctx,
		`SELECT balance FROM users WHERE id = $1`, fromUserID).Scan(&newBalance); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to read new balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return txID, newBalance, nil
}
