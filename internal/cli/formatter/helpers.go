package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// currency resolves an ISO 4217 code, falling back to USD.
func currency(code string) *money.Currency {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c
	}
	return money.GetCurrency(money.USD)
}

// Money renders v in the given currency, e.g. "$3,400.00" or "R$3.400,00".
// Values are rounded half away from zero to the currency's minor unit.
func Money(v decimal.Decimal, code string) string {
	cur := currency(code)
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// SignedMoney renders v with an explicit sign, green when positive and red
// when negative. Zero renders dimmed without a sign.
func SignedMoney(v decimal.Decimal, code string) string {
	switch v.Sign() {
	case 1:
		return StyleGreen.Render("+" + Money(v, code))
	case -1:
		return StyleRed.Render(Money(v, code))
	default:
		return StyleDim.Render(Money(v, code))
	}
}

// Percent renders an annual percentage such as "4.5%".
func Percent(v decimal.Decimal) string {
	if v.IsZero() {
		return Dim("--")
	}
	return v.StringFixed(1) + "%"
}

// RelativeDateFrom returns a human-friendly relative date from now.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// ActiveMark renders a check for active records and a dimmed dash otherwise.
func ActiveMark(active bool) string {
	if active {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("–")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if id == "" {
		return StyleDim.Render("--")
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Plural returns "1 asset" or "3 assets".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
