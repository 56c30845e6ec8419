package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/valueobject"
	"github.com/MakeMoneyOnly/Meqenet-sub004/pkg/events"
	pg "github.com/MakeMoneyOnly/Meqenet-sub004/pkg/postgres"
)

// insertOutbox writes one PENDING outbox row per domain event inside the
// caller's transaction. The engine emits exactly one event per mutation, so
// in practice this is a single row.
func insertOutbox(ctx context.Context, q pg.Querier, evts []events.DomainEvent) error {
	for _, evt := range evts {
		msg, err := events.NewOutboxMessage(evt)
		if err != nil {
			return err
		}
		_, err = q.Exec(ctx, `
			INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, msg.ID, msg.AggregateID, msg.AggregateType, msg.EventType, msg.Payload, msg.Status, msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert outbox row: %w", err)
		}
	}
	return nil
}

// insertAudit appends one immutable audit record inside the caller's
// transaction.
func insertAudit(ctx context.Context, q pg.Querier, rec model.AuditRecord) error {
	_, err := q.Exec(ctx, `
		INSERT INTO audit_records (id, event_type, entity_type, entity_id, user_id, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.EventType, rec.EntityType, rec.EntityID, rec.UserID, rec.EventData, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	return nil
}

// insertInstallments bulk-inserts the schedule rows for a new contract.
func insertInstallments(ctx context.Context, q pg.Querier, installments []model.Installment) error {
	for _, inst := range installments {
		_, err := q.Exec(ctx, `
			INSERT INTO installments (id, contract_id, number, status, scheduled_amount,
				principal_amount, interest_amount, fee_amount, paid_amount, due_date, paid_at, payment_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, inst.ID, inst.ContractID, inst.Number, inst.Status.String(), inst.ScheduledAmount,
			inst.PrincipalAmount, inst.InterestAmount, inst.FeeAmount, inst.PaidAmount,
			inst.DueDate, inst.PaidAt, nullableID(inst.PaymentID))
		if err != nil {
			return fmt.Errorf("insert installment %d: %w", inst.Number, err)
		}
	}
	return nil
}

// updateInstallments rewrites the mutable columns of each installment after a
// payment allocation.
func updateInstallments(ctx context.Context, q pg.Querier, installments []model.Installment) error {
	for _, inst := range installments {
		_, err := q.Exec(ctx, `
			UPDATE installments
			SET status = $2, paid_amount = $3, paid_at = $4, payment_id = $5
			WHERE id = $1
		`, inst.ID, inst.Status.String(), inst.PaidAmount, inst.PaidAt, nullableID(inst.PaymentID))
		if err != nil {
			return fmt.Errorf("update installment %d: %w", inst.Number, err)
		}
	}
	return nil
}

// nullableID maps empty string IDs to NULL for UUID columns.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// scanInstallments reads the full schedule for a contract, ordered by number.
func scanInstallments(ctx context.Context, q pg.Querier, contractID string) ([]model.Installment, error) {
	rows, err := q.Query(ctx, `
		SELECT id, contract_id, number, status, scheduled_amount, principal_amount,
			interest_amount, fee_amount, paid_amount, due_date, paid_at, payment_id
		FROM installments WHERE contract_id = $1 ORDER BY number
	`, contractID)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var installments []model.Installment
	for rows.Next() {
		var (
			inst      model.Installment
			status    string
			paidAt    *time.Time
			paymentID *string
		)
		if err := rows.Scan(&inst.ID, &inst.ContractID, &inst.Number, &status,
			&inst.ScheduledAmount, &inst.PrincipalAmount, &inst.InterestAmount,
			&inst.FeeAmount, &inst.PaidAmount, &inst.DueDate, &paidAt, &paymentID); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		inst.Status, err = valueobject.NewInstallmentStatus(status)
		if err != nil {
			return nil, fmt.Errorf("installment %s: %w", inst.ID, err)
		}
		inst.PaidAt = paidAt
		if paymentID != nil {
			inst.PaymentID = *paymentID
		}
		installments = append(installments, inst)
	}
	return installments, rows.Err()
}

// contractRow holds the scanned columns of a contracts row before
// reconstruction.
type contractRow struct {
	id                 string
	contractNumber     string
	customerID         string
	merchantID         string
	product            string
	status             string
	principalAmount    decimal.Decimal
	totalAmount        decimal.Decimal
	outstandingBalance decimal.Decimal
	apr                decimal.Decimal
	termMonths         int
	paymentFrequency   string
	firstPaymentDate   time.Time
	maturityDate       time.Time
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	activatedAt        time.Time
	completedAt        *time.Time
}

const contractColumns = `id, contract_number, customer_id, merchant_id, product, status,
	principal_amount, total_amount, outstanding_balance, apr, term_months, payment_frequency,
	first_payment_date, maturity_date, version, created_at, updated_at, activated_at, completed_at`

func scanContractRow(row pgx.Row) (contractRow, error) {
	var c contractRow
	err := row.Scan(&c.id, &c.contractNumber, &c.customerID, &c.merchantID, &c.product, &c.status,
		&c.principalAmount, &c.totalAmount, &c.outstandingBalance, &c.apr, &c.termMonths, &c.paymentFrequency,
		&c.firstPaymentDate, &c.maturityDate, &c.version, &c.createdAt, &c.updatedAt, &c.activatedAt, &c.completedAt)
	return c, err
}

// toContract reconstructs the aggregate from a scanned row and its schedule.
func (c contractRow) toContract(installments []model.Installment) (model.Contract, error) {
	product, err := valueobject.NewProduct(c.product)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %s: %w", c.id, err)
	}
	status, err := valueobject.NewContractStatus(c.status)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %s: %w", c.id, err)
	}
	frequency, err := valueobject.NewPaymentFrequency(c.paymentFrequency)
	if err != nil {
		return model.Contract{}, fmt.Errorf("contract %s: %w", c.id, err)
	}

	return model.ReconstructContract(
		c.id, c.contractNumber, c.customerID, c.merchantID,
		product, status,
		c.principalAmount, c.totalAmount, c.outstandingBalance, c.apr,
		c.termMonths, frequency,
		c.firstPaymentDate, c.maturityDate,
		installments, c.version,
		c.createdAt, c.updatedAt, c.activatedAt, c.completedAt,
	), nil
}
