package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// ImportSchema is the top-level JSON structure for a financial data import.
// Field names match the export format, so an exported file imports as-is.
type ImportSchema struct {
	ActiveIncome   []ActiveIncomeImport  `json:"activeIncome"`
	PassiveIncome  []PassiveIncomeImport `json:"passiveIncome"`
	Expenses       []ExpenseImport       `json:"expenses"`
	LiquidAssets   []LiquidAssetImport   `json:"liquidAssets"`
	IlliquidAssets []IlliquidAssetImport `json:"illiquidAssets"`
}

// ActiveIncomeImport defines an earned-income entry in the import file.
type ActiveIncomeImport struct {
	ID     string          `json:"id,omitempty"`
	Source string          `json:"source"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status,omitempty"`
}

// WindowImport is a pair of month bounds. Full dates are accepted and
// truncated to their month on conversion.
type WindowImport struct {
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// PassiveIncomeImport defines a passive-income entry in the import file.
type PassiveIncomeImport struct {
	ID           string           `json:"id,omitempty"`
	Source       string           `json:"source"`
	Amount       decimal.Decimal  `json:"amount"`
	Status       string           `json:"status,omitempty"`
	UseSchedule  *bool            `json:"useSchedule,omitempty"`
	Schedule     *WindowImport    `json:"schedule,omitempty"`
	AutoCompound *bool            `json:"autoCompound,omitempty"`
	APY          *decimal.Decimal `json:"apy,omitempty"`
}

// ExpenseImport defines an expense in the import file.
type ExpenseImport struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category,omitempty"`
	Type         string          `json:"type,omitempty"`
	Status       string          `json:"status,omitempty"`
	Frequency    string          `json:"frequency,omitempty"`
	Day          *int            `json:"day,omitempty"`
	TriggerMonth *int            `json:"triggerMonth,omitempty"`
	SpecificDate *string         `json:"specificDate,omitempty"`
	UseSchedule  *bool           `json:"useSchedule,omitempty"`
	StartDate    *string         `json:"startDate,omitempty"`
	EndDate      *string         `json:"endDate,omitempty"`

	LinkedIlliquidAssetID *string `json:"linkedIlliquidAssetId,omitempty"`
}

// LiquidAssetImport defines a cash-like asset in the import file.
type LiquidAssetImport struct {
	ID            string           `json:"id,omitempty"`
	Name          string           `json:"name"`
	Value         decimal.Decimal  `json:"value"`
	IsActive      *bool            `json:"isActive,omitempty"`
	AutoCompound  *bool            `json:"autoCompound,omitempty"`
	APY           *decimal.Decimal `json:"apy,omitempty"`
	DividendYield *decimal.Decimal `json:"dividendYield,omitempty"`
}

// IlliquidAssetImport defines an illiquid asset in the import file.
type IlliquidAssetImport struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name"`
	Value          decimal.Decimal  `json:"value"`
	IsActive       *bool            `json:"isActive,omitempty"`
	IsScheduled    *bool            `json:"isScheduled,omitempty"`
	ScheduledDate  *string          `json:"scheduledDate,omitempty"`
	ScheduledValue *decimal.Decimal `json:"scheduledValue,omitempty"`
	IsTriggered    *bool            `json:"isTriggered,omitempty"`
	TriggeredDate  *string          `json:"triggeredDate,omitempty"`

	LinkedExpenseID *string `json:"linkedExpenseId,omitempty"`
}

// LoadImportSchema reads and parses a financial data JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses an import document already in memory.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
