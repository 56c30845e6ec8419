package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/model"
	"github.com/MakeMoneyOnly/Meqenet-sub004/internal/domain/port"
	pg "github.com/MakeMoneyOnly/Meqenet-sub004/pkg/postgres"
)

// Compile-time interface check
var _ port.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implements ContractRepository using PostgreSQL.
type ContractRepo struct {
	pool *pgxpool.Pool
}

func NewContractRepo(pool *pgxpool.Pool) *ContractRepo {
	return &ContractRepo{pool: pool}
}

// Create persists a new contract, its installment schedule, its outbox event
// and the audit record in one transaction. A contract-number collision rolls
// everything back and surfaces as model.ErrDuplicateContractNumber.
func (r *ContractRepo) Create(ctx context.Context, contract model.Contract, audit model.AuditRecord) error {
	err := pg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO contracts (`+contractColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		`, contract.ID(), contract.ContractNumber(), contract.CustomerID(), contract.MerchantID(),
			contract.Product().String(), contract.Status().String(),
			contract.PrincipalAmount(), contract.TotalAmount(), contract.OutstandingBalance(), contract.APR(),
			contract.TermMonths(), contract.Frequency().String(),
			contract.FirstPaymentDate(), contract.MaturityDate(), contract.Version(),
			contract.CreatedAt(), contract.UpdatedAt(), contract.ActivatedAt(), contract.CompletedAt())
		if err != nil {
			if pg.IsUniqueViolation(err, "contracts_contract_number_key") {
				return model.ErrDuplicateContractNumber
			}
			return fmt.Errorf("insert contract: %w", err)
		}

		if err := insertInstallments(ctx, tx, contract.Installments()); err != nil {
			return err
		}
		if err := insertOutbox(ctx, tx, contract.DomainEvents()); err != nil {
			return err
		}
		return insertAudit(ctx, tx, audit)
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateContractNumber) {
			return model.ErrDuplicateContractNumber
		}
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

// FindByID loads a contract with its full schedule.
func (r *ContractRepo) FindByID(ctx context.Context, id string) (model.Contract, error) {
	return r.findOne(ctx, `SELECT `+contractColumns+` FROM contracts WHERE id = $1`, id)
}

// FindByNumber loads a contract by its human-readable contract number.
func (r *ContractRepo) FindByNumber(ctx context.Context, contractNumber string) (model.Contract, error) {
	return r.findOne(ctx, `SELECT `+contractColumns+` FROM contracts WHERE contract_number = $1`, contractNumber)
}

func (r *ContractRepo) findOne(ctx context.Context, query string, arg any) (model.Contract, error) {
	row, err := scanContractRow(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Contract{}, model.ErrContractNotFound
		}
		return model.Contract{}, fmt.Errorf("query contract: %w", err)
	}

	installments, err := scanInstallments(ctx, r.pool, row.id)
	if err != nil {
		return model.Contract{}, err
	}
	return row.toContract(installments)
}
