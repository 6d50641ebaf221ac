package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	xlog "github.com/sovr-labs/go-fp-clearing/internal/common/log"
	"github.com/sovr-labs/go-fp-clearing/internal/config"

	sq "github.com/Masterminds/squirrel"
)

// psql is the statement builder for every dynamic query.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type sqlRepo struct {
	r *Repository
}

type Repository struct {
	dbWrite *sql.DB
	dbRead  *sql.DB
	config  config.Config
	common  sqlRepo

	br  *bindingRepository
	ar  *attestationRepository
	ir  *intentRepository
	tsr *transferStateRepository
	or  *observationRepository
	hor *honoringOutcomeRepository
}

func NewSQLRepository(dbWrite *sql.DB, dbRead *sql.DB, cfg config.Config) *Repository {
	rtx := &Repository{
		dbWrite: dbWrite,
		dbRead:  dbRead,
		config:  cfg,
	}
	rtx.common.r = rtx
	rtx.br = (*bindingRepository)(&rtx.common)
	rtx.ar = (*attestationRepository)(&rtx.common)
	rtx.ir = (*intentRepository)(&rtx.common)
	rtx.tsr = (*transferStateRepository)(&rtx.common)
	rtx.or = (*observationRepository)(&rtx.common)
	rtx.hor = (*honoringOutcomeRepository)(&rtx.common)

	return rtx
}

type SQLRepository interface {
	Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) error
	GetBindingRepository() BindingRepository
	GetAttestationRepository() AttestationRepository
	GetIntentRepository() IntentRepository
	GetTransferStateRepository() TransferStateRepository
	GetObservationRepository() ObservationRepository
	GetHonoringOutcomeRepository() HonoringOutcomeRepository
}

var _ SQLRepository = (*Repository)(nil)

func (r *Repository) Atomic(ctx context.Context, steps func(ctx context.Context, r SQLRepository) error) (err error) {
	// nested calls join the outer transaction
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return steps(ctx, r)
	}

	tx, err := r.dbWrite.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	xlog.Debug(ctx, "[DATABASE.TRANSACTION.BEGIN]")
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("panic happened because: %v", p)
			xlog.Error(ctx, "[DATABASE.TRANSACTION.PANIC]", xlog.Err(err))
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
			}
			xlog.Warn(ctx, "[DATABASE.TRANSACTION.ROLLBACK]", xlog.Err(err))
		} else {
			if err = tx.Commit(); err != nil {
				if errors.Is(err, sql.ErrTxDone) {
					xlog.Warn(ctx, "[DATABASE.TRANSACTION.ALREADY_COMMITTED_OR_ROLLEDBACK]", xlog.Err(err))
					err = nil
				}
				return
			}

			xlog.Debug(ctx, "[DATABASE.TRANSACTION.COMMIT]")
		}
	}()
	ctx = injectTx(ctx, tx)
	err = steps(ctx, r)
	return
}

func (r *Repository) GetBindingRepository() BindingRepository {
	return r.br
}

func (r *Repository) GetAttestationRepository() AttestationRepository {
	return r.ar
}

func (r *Repository) GetIntentRepository() IntentRepository {
	return r.ir
}

func (r *Repository) GetTransferStateRepository() TransferStateRepository {
	return r.tsr
}

func (r *Repository) GetObservationRepository() ObservationRepository {
	return r.or
}

func (r *Repository) GetHonoringOutcomeRepository() HonoringOutcomeRepository {
	return r.hor
}
