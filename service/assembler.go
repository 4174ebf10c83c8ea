package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"frt-offers/domain"
	"frt-offers/repository"
)

const (
	offerTitle   = "FIRM OFFER"
	proformaLine = "OWISE AS PER ATTACHED CHRTS PROFORMA CP, BASED ON SYNACOMEX 2000 C/P, " +
		"LOGICALLY AMENDED AS PER MAIN TERMS AGREED (WHICH ALWAYS PREVAIL)"
	closingLine = "END OF FIRM OFFER"
	orSubLine   = "OR SUB: OWNERS SUBJECTS TO BE LIFTED WITHIN 24 HRS"
)

var sectionRule = strings.Repeat("─", sectionRuleWidth)

// AssembleOffer renders the offer text and its summary. Every clause id in
// sel must resolve in cat; otherwise nothing is returned.
func AssembleOffer(cat *repository.Catalog, req ValidatedRequest, sel domain.ClauseSelection) (domain.OfferResult, error) {
	r := req.Request
	cargoDescription := FormatCargoDescription(r.Quantity, r.QuantityTolerance, req.Cargo)

	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(offerTitle)
	line(sectionRule)
	line("")

	header := []string{
		"LOAD PORT: 1 GSB(A) " + portLine(req.LoadPort),
		"DISCHARGE PORT: 1 GSB(A) " + portLine(req.DischargePort),
		"CARGO: " + cargoDescription,
		"LAYCAN: " + FormatLaycan(req.LaycanStart, req.LaycanEnd),
		"FREIGHT: " + FormatFreight(r.FreightRate),
		sel.DemurrageLabel + ": " + FormatDemurrage(r.DemurrageRate),
	}
	// Owners' subjects apply to the offer whether or not a charterer is named.
	if r.OrSub {
		header = append(header, orSubLine)
	}
	if sel.HolidayCalendar != "" {
		header = append(header, "HOLIDAYS AS PER UKRAINE "+sel.HolidayCalendar+" CALENDAR")
	}
	for _, h := range header {
		line(h)
		line("")
	}

	if req.Charterer != nil {
		line(sectionRule)
		line(FormatCharterer(*req.Charterer, r.OrSub))
		line("")
	}

	for _, group := range sel.Groups {
		if group.Empty() {
			continue
		}
		line(sectionRule)
		line(group.Label)
		line(sectionRule)
		line("")
		for _, id := range group.ClauseIDs {
			clause, ok := cat.Clause(id)
			if !ok {
				return domain.OfferResult{}, domain.NewError(domain.KindInvalidReferenceData, "clauses",
					"clause %q selected for %s group is not in the library", id, group.Kind)
			}
			line(clause.Text)
			line("")
		}
	}

	line(sectionRule)
	line(proformaLine)
	line(sectionRule)
	b.WriteString(closingLine)

	ids := sel.Flatten()
	return domain.OfferResult{
		FirmOfferText: b.String(),
		Summary: domain.OfferSummary{
			Route:            req.LoadPort.Name + " → " + req.DischargePort.Name,
			CargoDescription: cargoDescription,
			TotalFreight:     TotalFreight(r.Quantity, r.FreightRate),
			PortType:         req.LoadPort.TypeTag,
			ClausesIncluded:  ids,
			ClausesCount:     len(ids),
		},
	}, nil
}

// TotalFreight is quantity × freight rate, computed in decimal so the product
// is exact for any rate with a finite decimal expansion.
func TotalFreight(quantity int, freightRate float64) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(freightRate))
}

func portLine(p domain.Port) string {
	return strings.ToUpper(p.Name + ", " + p.Country)
}
