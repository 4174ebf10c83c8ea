package domain

type CommissionFormat string

const (
	CommissionSplit CommissionFormat = "split"
	CommissionTotal CommissionFormat = "total"
)

type CommissionShare struct {
	Party string  `json:"party"`
	Pct   float64 `json:"pct"`
}

type Commission struct {
	Format    CommissionFormat  `json:"format"`
	TotalPct  float64           `json:"total_pct"`
	Breakdown []CommissionShare `json:"breakdown"`
}

type Company struct {
	CompanyID          string `json:"company_id"`
	LegalName          string `json:"legal_name"`
	Country            string `json:"country"`
	City               string `json:"city"`
	PostalCode         string `json:"postal_code"`
	Address            string `json:"address"`
	RegistrationNumber string `json:"registration_number"`
	VAT                string `json:"vat"`
	OrSubDefault       bool   `json:"or_sub_default"`
	IsPrimary          bool   `json:"is_primary"`
}

type Charterer struct {
	ChartererID   string     `json:"charterer_id"`
	ChartererName string     `json:"charterer_name"`
	Companies     []Company  `json:"companies"`
	Commission    Commission `json:"commission"`
}

// PrimaryCompany returns the first company flagged primary, falling back to
// the first company. ok is false when the charterer has no companies.
func (c Charterer) PrimaryCompany() (Company, bool) {
	for _, company := range c.Companies {
		if company.IsPrimary {
			return company, true
		}
	}
	if len(c.Companies) > 0 {
		return c.Companies[0], true
	}
	return Company{}, false
}

// ChartererInfo is the listing view used to populate charterer pickers: the
// full record plus the primary company's name and OR SUB default.
type ChartererInfo struct {
	Charterer
	CompanyName  string `json:"company_name"`
	OrSubDefault bool   `json:"or_sub_default"`
}
