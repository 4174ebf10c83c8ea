package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frt-offers/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "55,000 MT", FormatQuantity(55000, nil))
	assert.Equal(t, "55,000 MT ±5%", FormatQuantity(55000, floatPtr(5)))
	assert.Equal(t, "1,250,000 MT ±2.5%", FormatQuantity(1250000, floatPtr(2.5)))
	assert.Equal(t, "800 MT ±0%", FormatQuantity(800, floatPtr(0)))
}

func TestFormatRates(t *testing.T) {
	assert.Equal(t, "USD 18.00 PMT FIOST", FormatFreight(18))
	assert.Equal(t, "USD 18.75 PMT FIOST", FormatFreight(18.75))
	assert.Equal(t, "USD 9,000.00 PDPR BENDS", FormatDemurrage(9000))
	assert.Equal(t, "USD 12,500.50 PDPR BENDS", FormatDemurrage(12500.5))
	assert.Equal(t, "USD 750.00 PDPR BENDS", FormatDemurrage(750))
}

func TestFormatDemurrage_BeyondInt64(t *testing.T) {
	// 1e19 and 1e20 are above 2^63.
	assert.Equal(t, "USD 10,000,000,000,000,000,000.00 PDPR BENDS", FormatDemurrage(1e19))
	assert.Equal(t, "USD 100,000,000,000,000,000,000.00 PDPR BENDS", FormatDemurrage(1e20))
}

func TestGroupDigits(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"7":       "7",
		"999":     "999",
		"1000":    "1,000",
		"123456":  "123,456",
		"1234567": "1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, groupDigits(in), in)
	}
}

func TestFormatLaycan(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"same month", date(2025, 12, 15), date(2025, 12, 20), "15-20 DECEMBER 2025"},
		{"single day", date(2026, 3, 1), date(2026, 3, 1), "1-1 MARCH 2026"},
		{"across months", date(2025, 11, 28), date(2025, 12, 3), "28 NOVEMBER – 3 DECEMBER 2025"},
		{"across years", date(2025, 12, 29), date(2026, 1, 4), "29 DECEMBER 2025 – 4 JANUARY 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLaycan(tt.start, tt.end))
		})
	}
}

func TestCalendarYear(t *testing.T) {
	assert.Equal(t, "2025/2026", CalendarYear(date(2025, 12, 20)))
	assert.Equal(t, "2025/2026", CalendarYear(date(2025, 11, 2)))
	assert.Equal(t, "2026", CalendarYear(date(2026, 10, 31)))
	assert.Equal(t, "2026", CalendarYear(date(2026, 1, 5)))
}

func TestFormatCargoDescription(t *testing.T) {
	corn := domain.Cargo{Name: "Corn", Category: "grain", StwLow: 48, StwHigh: 50}
	assert.Equal(t, "55,000 MT OF CORN IN BULK STW ABT 48-50 WOG", FormatCargoDescription(55000, nil, corn))

	pellets := domain.Cargo{Name: "Sunflower Meal Pellets", StwLow: 55.5, StwHigh: 58}
	assert.Equal(t, "30,000 MT ±10% OF SUNFLOWER MEAL PELLETS IN BULK STW ABT 55.5-58 WOG",
		FormatCargoDescription(30000, floatPtr(10), pellets))
}

func TestFormatCommission(t *testing.T) {
	split := domain.Commission{
		Format:   domain.CommissionSplit,
		TotalPct: 2.5,
		Breakdown: []domain.CommissionShare{
			{Party: "Address commission", Pct: 1.25},
			{Party: "Brokerage to Sea Bridge Chartering", Pct: 1.25},
		},
	}
	assert.Equal(t,
		"2.5% TOTAL BROKERAGE CONSISTING OF:\n1.25% ADDRESS COMMISSION\n1.25% BROKERAGE TO SEA BRIDGE CHARTERING",
		FormatCommission(split))

	total := domain.Commission{
		Format:    domain.CommissionTotal,
		TotalPct:  3.75,
		Breakdown: []domain.CommissionShare{{Party: "Sea Bridge Chartering", Pct: 3.75}},
	}
	assert.Equal(t, "3.75% TOTAL BROKERAGE TO SEA BRIDGE CHARTERING", FormatCommission(total))
}

func TestFormatCharterer(t *testing.T) {
	cat := loadCatalog(t)
	delta, ok := cat.Charterer("CHTR-001")
	assert.True(t, ok)

	want := "CHARTERERS: DELTA GRAIN TRADING SA OR SUB\n" +
		"RUE DU RHONE 14\n" +
		"1204 GENEVA, SWITZERLAND\n" +
		"REG. NO: CHE-112.334.556 | VAT: CHE-112.334.556 MWST\n" +
		"\n" +
		"2.5% TOTAL BROKERAGE CONSISTING OF:\n" +
		"1.25% ADDRESS COMMISSION\n" +
		"1.25% BROKERAGE TO SEA BRIDGE CHARTERING"
	assert.Equal(t, want, FormatCharterer(delta, true))
}

func TestFormatCharterer_EveryCompany(t *testing.T) {
	cat := loadCatalog(t)
	nile, ok := cat.Charterer("CHTR-002")
	assert.True(t, ok)

	out := FormatCharterer(nile, false)

	assert.Contains(t, out, "CHARTERERS: NILE AGRO IMPORTS SAE\n")
	assert.Contains(t, out, "CHARTERERS: NILE AGRO TRADING DMCC\n")
	assert.NotContains(t, out, "OR SUB")
	assert.Contains(t, out, "\n\n3.75% TOTAL BROKERAGE TO SEA BRIDGE CHARTERING")
}

func TestFormatCompany_SkipsBlankParts(t *testing.T) {
	got := formatCompany(domain.Company{LegalName: "Bare Co", Country: "Greece"}, false)
	assert.Equal(t, "CHARTERERS: BARE CO\nGREECE", got)
}
