package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/port"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/money"
	pg "github.com/MakeMoneyOnly/Meqenet-sub004/pkg/postgres"
)

// Compile-time interface check
var _ port.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implements PaymentRepository using PostgreSQL.
type PaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, payment_reference, contract_id, customer_id, merchant_id, amount,
	currency, payment_method, idempotency_key, status, failure_reason,
	initiated_at, processed_at, completed_at`

// Record persists the payment together with the contract mutation it caused:
// the contract row is updated under an optimistic version guard, the touched
// installments rewritten, one outbox row and the audit record appended. The
// whole write is a single transaction.
//
// An idempotency-key collision surfaces as model.ErrDuplicateIdempotencyKey;
// a stale contract version as model.ErrVersionConflict. Both roll back the
// entire transaction.
func (r *PaymentRepo) Record(ctx context.Context, payment model.Payment, contract model.Contract, audit model.AuditRecord) error {
	err := pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO payments (`+paymentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`, payment.ID(), payment.PaymentReference(), payment.ContractID(),
			payment.CustomerID(), payment.MerchantID(), payment.Amount(),
			payment.Currency(), payment.Method(), nullableID(payment.IdempotencyKey()),
			payment.Status().String(), payment.FailureReason(),
			payment.InitiatedAt(), payment.ProcessedAt(), payment.CompletedAt())
		if err != nil {
			if pg.IsUniqueViolation(err, "payments_idempotency_key_key") {
				return model.ErrDuplicateIdempotencyKey
			}
			return fmt.Errorf("insert payment: %w", err)
		}

		// The aggregate arrives with version already incremented; the guard
		// matches the version the mutation was computed from.
		tag, err := tx.Exec(ctx, `
			UPDATE contracts
			SET status = $2, outstanding_balance = $3, version = $4, updated_at = $5, completed_at = $6
			WHERE id = $1 AND version = $7
		`, contract.ID(), contract.Status().String(), contract.OutstandingBalance(),
			contract.Version(), contract.UpdatedAt(), contract.CompletedAt(), contract.Version()-1)
		if err != nil {
			return fmt.Errorf("update contract: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return model.ErrVersionConflict
		}

		if err := updateInstallments(ctx, tx, contract.Installments()); err != nil {
			return err
		}
		if err := insertOutbox(ctx, tx, contract.DomainEvents()); err != nil {
			return err
		}
		return insertAudit(ctx, tx, audit)
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateIdempotencyKey) || errors.Is(err, model.ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

// FindByID loads a payment by ID.
func (r *PaymentRepo) FindByID(ctx context.Context, id string) (model.Payment, error) {
	payment, err := r.scanOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, model.ErrPaymentNotFound
		}
		return model.Payment{}, err
	}
	return payment, nil
}

// FindByIdempotencyKey looks up a previously recorded payment; the boolean
// reports whether one exists.
func (r *PaymentRepo) FindByIdempotencyKey(ctx context.Context, key string) (model.Payment, bool, error) {
	payment, err := r.scanOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE idempotency_key = $1`, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, false, nil
		}
		return model.Payment{}, false, err
	}
	return payment, true, nil
}

func (r *PaymentRepo) scanOne(ctx context.Context, query string, arg any) (model.Payment, error) {
	var (
		id, reference, contractID, customerID, merchantID string
		amount                                            decimal.Decimal
		currency, method, statusStr, failureReason        string
		idempotencyKey                                    *string
		initiatedAt                                       time.Time
		processedAt, completedAt                          *time.Time
	)
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&id, &reference, &contractID, &customerID, &merchantID, &amount,
		&currency, &method, &idempotencyKey, &statusStr, &failureReason,
		&initiatedAt, &processedAt, &completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, err
		}
		return model.Payment{}, fmt.Errorf("query payment: %w", err)
	}

	cur, err := money.NewCurrency(currency)
	if err != nil {
		return model.Payment{}, fmt.Errorf("payment %s: %w", id, err)
	}
	status, err := valueobject.NewPaymentStatus(statusStr)
	if err != nil {
		return model.Payment{}, fmt.Errorf("payment %s: %w", id, err)
	}

	var key string
	if idempotencyKey != nil {
		key = *idempotencyKey
	}

	return model.ReconstructPayment(
		id, reference, contractID, customerID, merchantID,
		amount, cur, method, key, status, failureReason,
		initiatedAt, processedAt, completedAt,
	), nil
}
