package repository

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"frt-offers/domain"
)

// CommissionTolerance is the allowed gap, in percentage points, between a
// split commission's breakdown sum and its total.
var CommissionTolerance = decimal.NewFromFloat(0.01)

// MaxCommissionPct bounds a charterer's total commission.
const MaxCommissionPct = 10.0

// Catalog is one immutable snapshot of the reference data. It is shared by
// all requests without locking; nothing may modify it or the slices it
// returns once it has been built.
type Catalog struct {
	version  string
	warnings []string

	loadPorts      []domain.Port
	dischargePorts []domain.Port
	cargoes        []domain.Cargo
	charterers     []domain.Charterer
	clauses        map[string]domain.Clause

	loadIdx      map[string]int
	dischargeIdx map[string]int
	cargoIdx     map[string]int
	chartererIdx map[string]int
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCatalog validates the tables and indexes them. Any integrity problem is
// returned as a *domain.Error; the snapshot is never partially valid.
func NewCatalog(
	loadPorts, dischargePorts []domain.Port,
	cargoes []domain.Cargo,
	charterers []domain.Charterer,
	clauses []domain.Clause,
) (*Catalog, error) {
	c := &Catalog{
		loadPorts:      slices.Clone(loadPorts),
		dischargePorts: slices.Clone(dischargePorts),
		cargoes:        slices.Clone(cargoes),
		charterers:     slices.Clone(charterers),
		clauses:        make(map[string]domain.Clause, len(clauses)),
	}

	for _, clause := range clauses {
		id := strings.TrimSpace(clause.ClauseID)
		if id == "" {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "clauses", "clause without id")
		}
		if _, dup := c.clauses[id]; dup {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "clauses", "duplicate clause id %q", id)
		}
		text := strings.Join(strings.Fields(clause.Text), " ")
		if text == "" {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "clauses", "clause %q has no text", id)
		}
		clause.ClauseID = id
		clause.Text = strings.ToUpper(text)
		c.clauses[id] = clause
	}
	for _, id := range domain.StandardClauseIDs {
		if _, ok := c.clauses[id]; !ok {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "clauses", "standard clause %q is missing", id)
		}
	}

	var err error
	if c.loadIdx, err = c.indexPorts(domain.PortRoleLoad, c.loadPorts); err != nil {
		return nil, err
	}
	if c.dischargeIdx, err = c.indexPorts(domain.PortRoleDischarge, c.dischargePorts); err != nil {
		return nil, err
	}
	if c.cargoIdx, err = c.indexCargoes(); err != nil {
		return nil, err
	}
	if c.chartererIdx, err = c.indexCharterers(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) indexPorts(role domain.PortRole, ports []domain.Port) (map[string]int, error) {
	field := string(role) + "_ports"
	if len(ports) == 0 {
		return nil, domain.NewError(domain.KindInvalidReferenceData, field, "catalog is empty")
	}
	idx := make(map[string]int, len(ports))
	for i := range ports {
		p := &ports[i]
		key := normalizeName(p.Name)
		if key == "" {
			return nil, domain.NewError(domain.KindInvalidReferenceData, field, "port %d has no name", i)
		}
		if _, dup := idx[key]; dup {
			return nil, domain.NewError(domain.KindInvalidReferenceData, field, "duplicate port %q", p.Name)
		}
		if !p.TypeTag.Valid() {
			return nil, domain.NewError(domain.KindInvalidReferenceData, field, "port %q has unknown type %q", p.Name, p.TypeTag)
		}
		for _, id := range p.ClauseIDs {
			if _, ok := c.clauses[id]; !ok {
				return nil, domain.NewError(domain.KindInvalidReferenceData, field, "port %q references unknown clause %q", p.Name, id)
			}
		}
		p.ClauseIDs = slices.Clone(p.ClauseIDs)
		idx[key] = i
	}
	return idx, nil
}

func (c *Catalog) indexCargoes() (map[string]int, error) {
	if len(c.cargoes) == 0 {
		return nil, domain.NewError(domain.KindInvalidReferenceData, "cargoes", "catalog is empty")
	}
	idx := make(map[string]int, len(c.cargoes))
	for i := range c.cargoes {
		cargo := &c.cargoes[i]
		key := normalizeName(cargo.Name)
		if key == "" {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "cargoes", "cargo %d has no name", i)
		}
		if _, dup := idx[key]; dup {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "cargoes", "duplicate cargo %q", cargo.Name)
		}
		if cargo.StwLow <= 0 || cargo.StwHigh < cargo.StwLow {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "cargoes",
				"cargo %q has invalid stowage range %v-%v", cargo.Name, cargo.StwLow, cargo.StwHigh)
		}
		cargo.Category = normalizeName(cargo.Category)
		if cargo.StwUnit == "" {
			cargo.StwUnit = "CF/T"
		}
		if cargo.Category == domain.CargoCategoryGrain {
			for _, id := range append(slices.Clone(domain.GrainClauseIDs), domain.GrainDocsTimeClauseID) {
				if _, ok := c.clauses[id]; !ok {
					return nil, domain.NewError(domain.KindInvalidReferenceData, "clauses", "grain clause %q is missing", id)
				}
			}
		}
		idx[key] = i
	}
	return idx, nil
}

func (c *Catalog) indexCharterers() (map[string]int, error) {
	idx := make(map[string]int, len(c.charterers))
	for i := range c.charterers {
		ch := &c.charterers[i]
		id := strings.TrimSpace(ch.ChartererID)
		if id == "" {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "charterers", "charterer %d has no id", i)
		}
		if _, dup := idx[id]; dup {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "charterers", "duplicate charterer %q", id)
		}
		if len(ch.Companies) == 0 {
			return nil, domain.NewError(domain.KindInvalidReferenceData, "charterers", "charterer %q has no companies", id)
		}
		primaries := 0
		for _, company := range ch.Companies {
			if strings.TrimSpace(company.LegalName) == "" {
				return nil, domain.NewError(domain.KindInvalidReferenceData, "charterers",
					"charterer %q has a company without legal name", id)
			}
			if company.IsPrimary {
				primaries++
			}
		}
		if len(ch.Companies) > 1 && primaries != 1 {
			primary, _ := ch.PrimaryCompany()
			c.warnings = append(c.warnings, fmt.Sprintf(
				"charterer %q has %d primary companies, using %q", id, primaries, primary.LegalName))
		}
		if err := validateCommission(id, ch.Commission); err != nil {
			return nil, err
		}
		ch.ChartererID = id
		ch.Companies = slices.Clone(ch.Companies)
		ch.Commission.Breakdown = slices.Clone(ch.Commission.Breakdown)
		idx[id] = i
	}
	return idx, nil
}

func validateCommission(chartererID string, cm domain.Commission) error {
	field := fmt.Sprintf("charterers[%s].commission", chartererID)
	if cm.TotalPct <= 0 || cm.TotalPct > MaxCommissionPct {
		return domain.NewError(domain.KindInvalidReferenceData, field,
			"total_pct %v outside (0, %v]", cm.TotalPct, MaxCommissionPct)
	}
	for _, share := range cm.Breakdown {
		if share.Pct <= 0 {
			return domain.NewError(domain.KindInvalidReferenceData, field, "share for %q must be positive", share.Party)
		}
		if strings.TrimSpace(share.Party) == "" {
			return domain.NewError(domain.KindInvalidReferenceData, field, "share without party")
		}
	}

	switch cm.Format {
	case domain.CommissionSplit:
		if len(cm.Breakdown) == 0 {
			return domain.NewError(domain.KindInvalidReferenceData, field, "split commission needs a breakdown")
		}
		sum := decimal.Zero
		for _, share := range cm.Breakdown {
			sum = sum.Add(decimal.NewFromFloat(share.Pct))
		}
		total := decimal.NewFromFloat(cm.TotalPct)
		if sum.Sub(total).Abs().GreaterThan(CommissionTolerance) {
			return domain.NewError(domain.KindCommissionMismatch, field,
				"breakdown sums to %s%% but total is %s%%", sum.String(), total.String())
		}
	case domain.CommissionTotal:
		if len(cm.Breakdown) != 1 {
			return domain.NewError(domain.KindInvalidReferenceData, field,
				"total commission needs exactly one party, got %d", len(cm.Breakdown))
		}
	default:
		return domain.NewError(domain.KindInvalidReferenceData, field, "unknown commission format %q", cm.Format)
	}
	return nil
}

// Version identifies the source files the snapshot was built from. It is
// empty for catalogs built directly with NewCatalog.
func (c *Catalog) Version() string {
	return c.version
}

// Warnings lists non-fatal data problems found while building the snapshot.
func (c *Catalog) Warnings() []string {
	return slices.Clone(c.warnings)
}

func (c *Catalog) LoadPort(name string) (domain.Port, bool) {
	i, ok := c.loadIdx[normalizeName(name)]
	if !ok {
		return domain.Port{}, false
	}
	return c.loadPorts[i], true
}

func (c *Catalog) DischargePort(name string) (domain.Port, bool) {
	i, ok := c.dischargeIdx[normalizeName(name)]
	if !ok {
		return domain.Port{}, false
	}
	return c.dischargePorts[i], true
}

// Port looks a name up in the catalog for role.
func (c *Catalog) Port(role domain.PortRole, name string) (domain.Port, bool) {
	if role == domain.PortRoleDischarge {
		return c.DischargePort(name)
	}
	return c.LoadPort(name)
}

func (c *Catalog) Cargo(name string) (domain.Cargo, bool) {
	i, ok := c.cargoIdx[normalizeName(name)]
	if !ok {
		return domain.Cargo{}, false
	}
	return c.cargoes[i], true
}

func (c *Catalog) Charterer(id string) (domain.Charterer, bool) {
	i, ok := c.chartererIdx[strings.TrimSpace(id)]
	if !ok {
		return domain.Charterer{}, false
	}
	return c.charterers[i], true
}

func (c *Catalog) Clause(id string) (domain.Clause, bool) {
	clause, ok := c.clauses[id]
	return clause, ok
}

func (c *Catalog) LoadPorts() []domain.Port {
	return slices.Clone(c.loadPorts)
}

func (c *Catalog) DischargePorts() []domain.Port {
	return slices.Clone(c.dischargePorts)
}

func (c *Catalog) Cargoes() []domain.Cargo {
	return slices.Clone(c.cargoes)
}

func (c *Catalog) Charterers() []domain.Charterer {
	return slices.Clone(c.charterers)
}

// ClauseCount is the size of the clause dictionary.
func (c *Catalog) ClauseCount() int {
	return len(c.clauses)
}
