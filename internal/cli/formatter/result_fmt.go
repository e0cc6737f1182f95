package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/cloudsync"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/trigger"
)

func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔") + " Imported " + Plural(r.Total(), "record") + "\n")
	rows := [][]string{
		{"Active income", fmt.Sprint(r.ActiveIncomeCount)},
		{"Passive income", fmt.Sprint(r.PassiveIncomeCount)},
		{"Expenses", fmt.Sprint(r.ExpenseCount)},
		{"Liquid assets", fmt.Sprint(r.LiquidAssetCount)},
		{"Illiquid assets", fmt.Sprint(r.IlliquidAssetCount)},
	}
	b.WriteString(RenderTable([]string{"COLLECTION", "COUNT"}, rows, AlignRight(1)))
	if r.ReplacedRecordCount > 0 {
		b.WriteString(Dim("Replaced " + Plural(r.ReplacedRecordCount, "existing record")) + "\n")
	}
	return b.String()
}

// FormatSweep reports triggered and skipped assets.
func FormatSweep(res *trigger.Result, currencyCode string) string {
	var b strings.Builder
	if len(res.Triggered) == 0 {
		b.WriteString(Dim("No scheduled assets are due.") + "\n")
	} else {
		b.WriteString(StyleGreen.Render("✔") + " Triggered " + Plural(len(res.Triggered), "asset") + "\n")
		rows := make([][]string, 0, len(res.Triggered))
		for _, ev := range res.Triggered {
			rows = append(rows, []string{ev.Name, Money(ev.Value, currencyCode), ev.TriggeredDate})
		}
		b.WriteString(RenderTable([]string{"ASSET", "VALUE", "TRIGGERED"}, rows, AlignRight(1)))
	}
	for _, s := range res.Skipped {
		b.WriteString(StyleYellow.Render("!") + fmt.Sprintf(" Skipped %s (%s): %s\n", s.Name, s.ScheduledDate, s.Reason))
	}
	return b.String()
}

func FormatLinkResult(verb string, r *service.LinkResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✔") + fmt.Sprintf(" %s expense %s\n", verb, Bold(r.Expense.Name)))
	if r.Asset == nil {
		return b.String()
	}
	b.WriteString(fmt.Sprintf("  asset %s  %s", Bold(r.Asset.Name), StateIndicator(r.Asset.State())))
	if r.Asset.ScheduledDate != "" {
		b.WriteString("  " + r.Asset.ScheduledDate)
	}
	b.WriteString("\n")
	if !r.AssetChanged {
		b.WriteString("  " + Dim("asset unchanged") + "\n")
	}
	return b.String()
}

// FormatSyncStatus renders the syncer state and how long ago it last synced.
func FormatSyncStatus(st cloudsync.Status, now time.Time) string {
	var state string
	switch st.State {
	case cloudsync.StateIdle:
		state = StyleGreen.Render("● idle")
	case cloudsync.StateError:
		state = StyleRed.Render("● error")
	default:
		state = StyleYellow.Render("● " + string(st.State))
	}
	last := Dim("never")
	if st.LastSync != nil {
		last = st.LastSync.Format(time.RFC3339) + " " + Dim("("+RelativeDateFrom(*st.LastSync, now)+")")
	}
	content := fmt.Sprintf("State      %s\nLast sync  %s", state, last)
	if st.LastError != "" {
		content += "\nError      " + StyleRed.Render(st.LastError)
	}
	return RenderBox("Cloud sync", content) + "\n"
}
