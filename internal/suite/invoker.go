package suite

import (
	"context"
	"database/sql"

	"ctr/internal/outcome"
	"ctr/internal/service"
	"ctr/internal/store"
)

// Invoker executes one case and returns its normalized outcome.
type Invoker interface {
	Invoke(ctx context.Context, c Case) outcome.Outcome
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, c Case) outcome.Outcome

func (f InvokerFunc) Invoke(ctx context.Context, c Case) outcome.Outcome {
	return f(ctx, c)
}

// ServiceInvoker runs an operation against the database inside a
// transaction that is always rolled back, so cases never see each other's
// writes.
type ServiceInvoker struct {
	db        *sql.DB
	operation Operation
	fixture   *store.Fixture
	images    *service.ImageStore
}

// NewServiceInvoker creates a ServiceInvoker. fixture may be nil.
func NewServiceInvoker(db *sql.DB, op Operation, fixture *store.Fixture, images *service.ImageStore) *ServiceInvoker {
	return &ServiceInvoker{
		db:        db,
		operation: op,
		fixture:   fixture,
		images:    images,
	}
}

// Invoke implements Invoker.
func (inv *ServiceInvoker) Invoke(ctx context.Context, c Case) outcome.Outcome {
	tx, err := inv.db.BeginTx(ctx, nil)
	if err != nil {
		return outcome.New(inv.operation.Success, err)
	}
	defer tx.Rollback()

	if inv.fixture != nil {
		if err := inv.fixture.Apply(ctx, tx); err != nil {
			return outcome.New(inv.operation.Success, err)
		}
	}

	svc := service.New(store.New(tx), inv.images)
	return outcome.New(inv.operation.Success, inv.operation.Call(ctx, svc, c))
}
