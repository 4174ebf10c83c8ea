package service

import (
	"strings"
	"time"

	"frt-offers/domain"
)

const (
	demurrageLabel          = "DEMURRAGE"
	demurrageDetentionLabel = "DEMURRAGE/DETENTION"
	standardLabel           = "STANDARD CLAUSES"
)

// SelectClauses computes the clause groups for one offer. It is pure: clause
// order has legal weight, so identical inputs must give identical output.
//
// Route clauses come from the load port, port clauses from the discharge
// port and cargo clauses from the cargo category. The standard clauses close
// every offer. Each group is de-duplicated keeping the first occurrence.
func SelectClauses(load, discharge domain.Port, cargo domain.Cargo, laycanEnd time.Time) domain.ClauseSelection {
	sel := domain.ClauseSelection{DemurrageLabel: demurrageLabel}
	sel.Groups[domain.GroupRoute] = domain.ClauseGroup{Kind: domain.GroupRoute, Label: routeLabel(load)}
	sel.Groups[domain.GroupPortRule] = domain.ClauseGroup{
		Kind:  domain.GroupPortRule,
		Label: strings.ToUpper(discharge.Country) + " CLAUSES",
	}
	sel.Groups[domain.GroupCargoRule] = domain.ClauseGroup{
		Kind:  domain.GroupCargoRule,
		Label: "CARGO CLAUSES (" + strings.ToUpper(cargo.Category) + ")",
	}
	sel.Groups[domain.GroupStandard] = domain.ClauseGroup{Kind: domain.GroupStandard, Label: standardLabel}

	sel.Groups[domain.GroupRoute].Add(load.ClauseIDs...)
	sel.Groups[domain.GroupPortRule].Add(discharge.ClauseIDs...)

	if cargo.Category == domain.CargoCategoryGrain {
		sel.Groups[domain.GroupCargoRule].Add(domain.GrainClauseIDs...)
		if discharge.TypeTag == domain.PortTypeEgyptDischarge {
			sel.Groups[domain.GroupCargoRule].Add(domain.GrainDocsTimeClauseID)
		}
	}
	sel.Groups[domain.GroupStandard].Add(domain.StandardClauseIDs...)

	if load.TypeTag == domain.PortTypeDanube {
		sel.DemurrageLabel = demurrageDetentionLabel
	}
	if strings.EqualFold(load.Country, "Ukraine") {
		sel.HolidayCalendar = CalendarYear(laycanEnd)
	}
	return sel
}

func routeLabel(load domain.Port) string {
	label := strings.ToUpper(load.Country) + " CLAUSES"
	switch load.TypeTag {
	case domain.PortTypeDanube, domain.PortTypePOC:
		label += " (" + string(load.TypeTag) + ")"
	}
	return label
}
