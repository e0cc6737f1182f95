package service

import (
	"context"
	"fmt"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
)

// loadData reads the aggregate in one transaction so every collection comes
// from the same snapshot.
func loadData(ctx context.Context, uow db.UnitOfWork, userID string) (*domain.FinancialData, error) {
	var data *domain.FinancialData
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		data, err = repository.NewSQLiteFinancialDataRepo(tx, userID).Load(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading financial data: %w", err)
	}
	return data, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
