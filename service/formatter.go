package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"frt-offers/domain"
)

// All numbers are rendered with US conventions whatever the host locale:
// comma thousands separator, period decimal point.
var usPrinter = message.NewPrinter(language.AmericanEnglish)

func groupInt(n int64) string {
	return usPrinter.Sprintf("%d", n)
}

// groupFixed renders d with thousands separators and exactly places decimals.
func groupFixed(d decimal.Decimal, places int32) string {
	fixed := d.StringFixed(places)
	intPart, frac, _ := strings.Cut(fixed, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	out := sign + groupDigits(intPart)
	if frac != "" {
		out += "." + frac
	}
	return out
}

// groupDigits inserts a comma every three digits from the right. It works on
// the digit string so no magnitude can overflow.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// trimNumber renders v without trailing zeros: 5 -> "5", 2.50 -> "2.5".
func trimNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// FormatQuantity renders "55,000 MT", or "55,000 MT ±5%" with a tolerance.
func FormatQuantity(quantity int, tolerance *float64) string {
	s := groupInt(int64(quantity)) + " MT"
	if tolerance != nil {
		s += " ±" + trimNumber(*tolerance) + "%"
	}
	return s
}

func FormatFreight(rate float64) string {
	return fmt.Sprintf("USD %s PMT FIOST", decimal.NewFromFloat(rate).StringFixed(2))
}

func FormatDemurrage(rate float64) string {
	return fmt.Sprintf("USD %s PDPR BENDS", groupFixed(decimal.NewFromFloat(rate), 2))
}

func monthName(t time.Time) string {
	return strings.ToUpper(t.Month().String())
}

// FormatLaycan renders "15-20 DECEMBER 2025" when both dates fall in the same
// month, otherwise "28 NOVEMBER – 3 DECEMBER 2025". A window crossing the
// year end names both years.
func FormatLaycan(start, end time.Time) string {
	if start.Year() == end.Year() && start.Month() == end.Month() {
		return fmt.Sprintf("%d-%d %s %d", start.Day(), end.Day(), monthName(end), end.Year())
	}
	if start.Year() != end.Year() {
		return fmt.Sprintf("%d %s %d – %d %s %d",
			start.Day(), monthName(start), start.Year(), end.Day(), monthName(end), end.Year())
	}
	return fmt.Sprintf("%d %s – %d %s %d", start.Day(), monthName(start), end.Day(), monthName(end), end.Year())
}

// CalendarYear names the holiday calendar governing a laycan ending on end.
// Laycans ending in November or December straddle two calendars.
func CalendarYear(end time.Time) string {
	if end.Month() == time.November || end.Month() == time.December {
		return fmt.Sprintf("%d/%d", end.Year(), end.Year()+1)
	}
	return fmt.Sprintf("%d", end.Year())
}

func FormatCargoDescription(quantity int, tolerance *float64, cargo domain.Cargo) string {
	return fmt.Sprintf("%s OF %s IN BULK STW ABT %s-%s WOG",
		FormatQuantity(quantity, tolerance),
		strings.ToUpper(cargo.Name),
		trimNumber(cargo.StwLow),
		trimNumber(cargo.StwHigh),
	)
}

// FormatCharterer renders every company of the charterer followed by the
// commission lines. With orSub set each legal name gets an " OR SUB" suffix.
func FormatCharterer(ch domain.Charterer, orSub bool) string {
	blocks := make([]string, 0, len(ch.Companies)+1)
	for _, company := range ch.Companies {
		blocks = append(blocks, formatCompany(company, orSub))
	}
	blocks = append(blocks, FormatCommission(ch.Commission))
	return strings.Join(blocks, "\n\n")
}

func formatCompany(c domain.Company, orSub bool) string {
	name := strings.ToUpper(strings.TrimSpace(c.LegalName))
	if orSub {
		name += " OR SUB"
	}
	lines := []string{"CHARTERERS: " + name}
	if c.Address != "" {
		lines = append(lines, strings.ToUpper(c.Address))
	}

	place := strings.TrimSpace(strings.Join(nonEmpty(c.PostalCode, c.City), " "))
	if c.Country != "" {
		if place != "" {
			place += ", "
		}
		place += c.Country
	}
	if place != "" {
		lines = append(lines, strings.ToUpper(place))
	}

	var ids []string
	if c.RegistrationNumber != "" {
		ids = append(ids, "REG. NO: "+c.RegistrationNumber)
	}
	if c.VAT != "" {
		ids = append(ids, "VAT: "+c.VAT)
	}
	if len(ids) > 0 {
		lines = append(lines, strings.ToUpper(strings.Join(ids, " | ")))
	}
	return strings.Join(lines, "\n")
}

// FormatCommission renders a split commission as a header plus one line per
// share, and a total commission as a single line naming the sole party.
func FormatCommission(cm domain.Commission) string {
	total := trimNumber(cm.TotalPct) + "%"
	if cm.Format == domain.CommissionTotal && len(cm.Breakdown) > 0 {
		return fmt.Sprintf("%s TOTAL BROKERAGE TO %s", total, strings.ToUpper(cm.Breakdown[0].Party))
	}
	lines := []string{total + " TOTAL BROKERAGE CONSISTING OF:"}
	for _, share := range cm.Breakdown {
		lines = append(lines, fmt.Sprintf("%s%% %s", trimNumber(share.Pct), strings.ToUpper(share.Party)))
	}
	return strings.Join(lines, "\n")
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
