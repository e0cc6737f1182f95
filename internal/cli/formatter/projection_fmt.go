package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gmnrmyr/NumoraQ-sub000/internal/projection"
	"github.com/gmnrmyr/NumoraQ-sub000/internal/service"
)

// MonthLabel renders "2024-12" as "Dec 2024". Unparseable input is returned
// unchanged.
func MonthLabel(yearMonth string) string {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return yearMonth
	}
	return t.Format("Jan 2006")
}

// markerCell summarizes a month's schedule changes: ▲ for starts, ▼ for ends,
// ★ for yearly expenses firing.
func markerCell(m projection.MarkerEntry) string {
	var parts []string
	for _, s := range m.Starts {
		parts = append(parts, StyleGreen.Render("▲"+s))
	}
	for _, e := range m.Ends {
		parts = append(parts, StyleRed.Render("▼"+e))
	}
	if m.YearlyCount > 0 {
		parts = append(parts, StyleYellow.Render("★"+strconv.Itoa(m.YearlyCount)))
	}
	return strings.Join(parts, " ")
}

// FormatProjection renders the month-by-month balance table.
func FormatProjection(p *service.Projection, currencyCode string) string {
	var b strings.Builder
	b.WriteString(Header("Projection"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("as of %s, %s", p.AsOf.Format("2006-01-02"), Plural(p.Horizon, "month"))))
	b.WriteString("\n\n")

	markers := make(map[int]projection.MarkerEntry, len(p.Markers))
	for _, m := range p.Markers {
		markers[m.Month] = m
	}

	headers := []string{"#", "MONTH", "INCOME", "EXPENSES", "NET", "BALANCE", "EVENTS"}
	rows := make([][]string, 0, len(p.Snapshots))
	for _, s := range p.Snapshots {
		if s.Month == 0 {
			rows = append(rows, []string{
				"0", Dim("now"), Dim("--"), Dim("--"), Dim("--"), Money(s.Balance, currencyCode), "",
			})
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(s.Month),
			MonthLabel(s.YearMonth),
			Money(s.MonthlyIncome, currencyCode),
			Money(s.MonthlyExpenses, currencyCode),
			SignedMoney(s.NetChange, currencyCode),
			Bold(Money(s.Balance, currencyCode)),
			markerCell(markers[s.Month]),
		})
	}
	b.WriteString(RenderTable(headers, rows, AlignRight(0, 2, 3, 4, 5)))

	if n := len(p.Snapshots); n > 1 {
		last := p.Snapshots[n-1]
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Final balance %s  (growth %s)\n",
			Bold(Money(last.Balance, currencyCode)), SignedMoney(last.CumulativeGrowth, currencyCode)))
	}
	return b.String()
}

// FormatMarkers lists the months where schedules start or end or yearly
// expenses fire.
func FormatMarkers(markers []projection.MarkerEntry) string {
	if len(markers) == 0 {
		return Dim("No schedule changes in range.") + "\n"
	}
	headers := []string{"#", "STARTS", "ENDS", "YEARLY"}
	rows := make([][]string, 0, len(markers))
	for _, m := range markers {
		yearly := ""
		if m.YearlyCount > 0 {
			yearly = strconv.Itoa(m.YearlyCount)
		}
		rows = append(rows, []string{
			strconv.Itoa(m.Month),
			strings.Join(m.Starts, ", "),
			strings.Join(m.Ends, ", "),
			yearly,
		})
	}
	return RenderTable(headers, rows, AlignRight(0, 3))
}

// FormatDetail renders what resolves in a single projected month.
func FormatDetail(d *projection.MonthDetail) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Month %d: %s", d.Month, MonthLabel(d.YearMonth))))
	b.WriteString("\n")

	list := func(label string, items []string) {
		b.WriteString(Bold(label))
		b.WriteString("\n")
		if len(items) == 0 {
			b.WriteString("  " + Dim("none") + "\n")
			return
		}
		for _, it := range items {
			b.WriteString("  • " + it + "\n")
		}
	}
	list("Variable expenses", d.VariableExpenses)
	list("Scheduled passive income", d.ScheduledPassive)
	list("Starting", d.Marker.Starts)
	list("Ending", d.Marker.Ends)
	b.WriteString(fmt.Sprintf("%s %d\n", Bold("Yearly expenses firing:"), d.YearlyCount))
	return b.String()
}
