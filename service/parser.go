package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// The parsers below read back the header fields produced by the formatters.
// They accept exactly the rendered layout, nothing looser.

// ParseQuantity reads "55,000 MT" or "55,000 MT ±5%". tolerance is nil when
// the tolerance suffix is absent.
func ParseQuantity(s string) (quantity int, tolerance *float64, err error) {
	body, tol, hasTol := strings.Cut(strings.TrimSpace(s), " ±")
	numText, ok := strings.CutSuffix(body, " MT")
	if !ok {
		return 0, nil, fmt.Errorf("quantity %q: missing MT suffix", s)
	}
	n, err := parseGrouped(numText)
	if err != nil {
		return 0, nil, fmt.Errorf("quantity %q: %w", s, err)
	}
	if !n.IsInteger() {
		return 0, nil, fmt.Errorf("quantity %q: not a whole number", s)
	}
	quantity = int(n.IntPart())

	if hasTol {
		pctText, ok := strings.CutSuffix(tol, "%")
		if !ok {
			return 0, nil, fmt.Errorf("quantity %q: malformed tolerance", s)
		}
		pct, err := decimal.NewFromString(pctText)
		if err != nil {
			return 0, nil, fmt.Errorf("quantity %q: %w", s, err)
		}
		v := pct.InexactFloat64()
		tolerance = &v
	}
	return quantity, tolerance, nil
}

// ParseFreight reads "USD 18.00 PMT FIOST".
func ParseFreight(s string) (decimal.Decimal, error) {
	return parseMoney(s, "PMT FIOST")
}

// ParseDemurrage reads "USD 9,000.00 PDPR BENDS".
func ParseDemurrage(s string) (decimal.Decimal, error) {
	return parseMoney(s, "PDPR BENDS")
}

func parseMoney(s, unit string) (decimal.Decimal, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(s), "USD ")
	if !ok {
		return decimal.Zero, fmt.Errorf("amount %q: missing USD prefix", s)
	}
	body, ok = strings.CutSuffix(body, " "+unit)
	if !ok {
		return decimal.Zero, fmt.Errorf("amount %q: missing %s suffix", s, unit)
	}
	v, err := parseGrouped(body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, err)
	}
	return v, nil
}

func parseGrouped(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}
