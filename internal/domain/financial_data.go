package domain

import "time"

// FinancialData is the single per-user aggregate every record belongs to.
type FinancialData struct {
	ActiveIncome   []ActiveIncomeEntry  `json:"activeIncome"`
	PassiveIncome  []PassiveIncomeEntry `json:"passiveIncome"`
	Expenses       []Expense            `json:"expenses"`
	LiquidAssets   []LiquidAsset        `json:"liquidAssets"`
	IlliquidAssets []IlliquidAsset      `json:"illiquidAssets"`

	LastSync *time.Time `json:"lastSync,omitempty"`
}

// FindExpense returns a pointer into the aggregate's expense slice, or nil.
func (d *FinancialData) FindExpense(id string) *Expense {
	for i := range d.Expenses {
		if d.Expenses[i].ID == id {
			return &d.Expenses[i]
		}
	}
	return nil
}

// FindIlliquidAsset returns a pointer into the aggregate's illiquid assets, or nil.
func (d *FinancialData) FindIlliquidAsset(id string) *IlliquidAsset {
	for i := range d.IlliquidAssets {
		if d.IlliquidAssets[i].ID == id {
			return &d.IlliquidAssets[i]
		}
	}
	return nil
}

// RecordCount is the total number of records across all collections.
func (d *FinancialData) RecordCount() int {
	return len(d.ActiveIncome) + len(d.PassiveIncome) + len(d.Expenses) +
		len(d.LiquidAssets) + len(d.IlliquidAssets)
}
