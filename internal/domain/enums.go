package domain

type IncomeStatus string

const (
	IncomeActive   IncomeStatus = "active"
	IncomeInactive IncomeStatus = "inactive"
	IncomePending  IncomeStatus = "pending"
)

type ExpenseType string

const (
	ExpenseRecurring ExpenseType = "recurring"
	ExpenseVariable  ExpenseType = "variable"
)

type ExpenseStatus string

const (
	ExpenseActive   ExpenseStatus = "active"
	ExpenseInactive ExpenseStatus = "inactive"
)

type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// AssetState is the lifecycle position of an illiquid asset. It is derived
// from the asset's flags, never stored.
type AssetState string

const (
	AssetUnscheduled AssetState = "unscheduled"
	AssetScheduled   AssetState = "scheduled"
	AssetTriggered   AssetState = "triggered"
)

// ValidIncomeStatuses is the canonical set of accepted income status strings.
var ValidIncomeStatuses = map[string]bool{
	"active": true, "inactive": true, "pending": true,
}

// ValidExpenseTypes is the canonical set of accepted expense type strings.
var ValidExpenseTypes = map[string]bool{
	"recurring": true, "variable": true,
}

// ValidExpenseStatuses is the canonical set of accepted expense status strings.
var ValidExpenseStatuses = map[string]bool{
	"active": true, "inactive": true,
}

// ValidFrequencies is the canonical set of accepted recurrence strings.
var ValidFrequencies = map[string]bool{
	"monthly": true, "yearly": true,
}
