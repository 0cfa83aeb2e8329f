package pg

import (
	"context"
	"database/sql"
	"time"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	trmmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"

	"bookingsvc/internal/domain"
)

var ctxGetter = trmsql.DefaultCtxGetter

type TxManager struct {
	tm trm.Manager
}

var _ domain.UnitOfWork = (*TxManager)(nil)

func NewTxManager(db *sql.DB) *TxManager {
	mgr := trmmanager.Must(
		trmsql.NewDefaultFactory(db),
		trmmanager.WithCtxManager(trmcontext.DefaultManager),
	)

	return &TxManager{tm: mgr}
}

// WithinTx joins the transaction already in ctx, if any, or starts one.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.tm.Do(ctx, fn)
}

func exec(ctx context.Context, db *sql.DB, query string, args ...any) (sql.Result, error) {
	return ctxGetter.DefaultTrOrDB(ctx, db).ExecContext(ctx, query, args...)
}

func queryRow(ctx context.Context, db *sql.DB, query string, args ...any) *sql.Row {
	return ctxGetter.DefaultTrOrDB(ctx, db).QueryRowContext(ctx, query, args...)
}

func query(ctx context.Context, db *sql.DB, query string, args ...any) (*sql.Rows, error) {
	return ctxGetter.DefaultTrOrDB(ctx, db).QueryContext(ctx, query, args...)
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
