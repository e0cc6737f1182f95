package formatter

import (
	"strings"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
	"github.com/shopspring/decimal"
)

// FormatAssets renders liquid holdings with their share of the active liquid
// total, then illiquid assets with their lifecycle state.
func FormatAssets(list *service.AssetList, currencyCode string) string {
	var b strings.Builder

	b.WriteString(Header("Liquid assets"))
	b.WriteString("\n")
	if len(list.Liquid) == 0 {
		b.WriteString(Dim("No liquid assets.") + "\n")
	} else {
		total := decimal.Zero
		for _, a := range list.Liquid {
			if a.IsActive {
				total = total.Add(a.Value)
			}
		}
		rows := make([][]string, 0, len(list.Liquid))
		for _, a := range list.Liquid {
			share := Dim("--")
			if a.IsActive && total.IsPositive() {
				share = RenderShare(a.Value.Div(total).InexactFloat64(), 10)
			}
			rows = append(rows, []string{
				a.Name,
				Money(a.Value, currencyCode),
				Percent(a.APY),
				Percent(a.DividendYield),
				ActiveMark(a.IsActive),
				share,
			})
		}
		b.WriteString(RenderTable([]string{"NAME", "VALUE", "APY", "DIVIDEND", "ACTIVE", "SHARE"}, rows, AlignRight(1, 2, 3)))
		b.WriteString(Dim("Active total "+Money(total, currencyCode)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(Header("Illiquid assets"))
	b.WriteString("\n")
	if len(list.Illiquid) == 0 {
		b.WriteString(Dim("No illiquid assets.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(list.Illiquid))
	for _, a := range list.Illiquid {
		date := a.ScheduledDate
		if a.TriggeredDate != "" {
			date = a.TriggeredDate
		}
		rows = append(rows, []string{
			a.Name,
			Money(a.Value, currencyCode),
			StateIndicator(a.State()),
			date,
			TruncID(a.LinkedExpenseID),
		})
	}
	b.WriteString(RenderTable([]string{"NAME", "VALUE", "STATE", "DATE", "EXPENSE"}, rows, AlignRight(1)))
	return b.String()
}
