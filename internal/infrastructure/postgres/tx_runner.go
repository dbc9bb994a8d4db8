package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.LeaveTxRunner = (*TxRunner)(nil)

// beginner lo que TxRunner necesita del pool.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{db: pool}
}

// RunLeave inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Se usa para las transiciones de solicitudes: leer con FOR UPDATE, validar estado y escribir.
func (r *TxRunner) RunLeave(ctx context.Context, fn func(
	leaves repository.LeaveRequestRepository,
	users repository.UserRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLeaveRequestRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
