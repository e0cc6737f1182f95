package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/db"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/domain"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/importer"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/repository"
)

type recordService struct {
	uow      db.UnitOfWork
	userID   string
	observer UseCaseObserver
}

func NewRecordService(uow db.UnitOfWork, userID string, observers ...UseCaseObserver) RecordService {
	return &recordService{
		uow:      uow,
		userID:   userID,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *recordService) Load(ctx context.Context) (*domain.FinancialData, error) {
	return loadData(ctx, s.uow, s.userID)
}

func (s *recordService) Assets(ctx context.Context) (*AssetList, error) {
	data, err := loadData(ctx, s.uow, s.userID)
	if err != nil {
		return nil, err
	}
	return &AssetList{Liquid: data.LiquidAssets, Illiquid: data.IlliquidAssets}, nil
}

func (s *recordService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, schema)
}

// ImportFromSchema validates the schema and replaces all local records with
// it in one transaction. The recorded last-sync time is kept.
func (s *recordService) ImportFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", time.Now(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}

	data := importer.Convert(schema)
	result = &ImportResult{
		ActiveIncomeCount:  len(data.ActiveIncome),
		PassiveIncomeCount: len(data.PassiveIncome),
		ExpenseCount:       len(data.Expenses),
		LiquidAssetCount:   len(data.LiquidAssets),
		IlliquidAssetCount: len(data.IlliquidAssets),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteFinancialDataRepo(tx, s.userID)
		previous, err := repo.Load(ctx)
		if err != nil {
			return err
		}
		result.ReplacedRecordCount = previous.RecordCount()
		return repo.ReplaceAll(ctx, data)
	})
	if err != nil {
		return nil, fmt.Errorf("replacing financial data: %w", err)
	}

	fields["records"] = result.Total()
	fields["replaced"] = result.ReplacedRecordCount
	return result, nil
}

// Export writes the aggregate as indented JSON in the import format.
func (s *recordService) Export(ctx context.Context, w io.Writer) error {
	data, err := loadData(ctx, s.uow, s.userID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}
