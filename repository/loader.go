package repository

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"frt-offers/domain"
)

// Reference data file names, relative to the data root.
const (
	PortsFile      = "ports.yaml"
	CargoesFile    = "cargoes.yaml"
	CharterersFile = "charterers.yaml"
	ClausesFile    = "clauses.yaml"
)

// DataFiles lists every file that makes up one catalog snapshot.
var DataFiles = []string{PortsFile, CargoesFile, CharterersFile, ClausesFile}

type portRecord struct {
	PortID    string   `yaml:"port_id"`
	Name      string   `yaml:"name"`
	Country   string   `yaml:"country"`
	Region    string   `yaml:"region"`
	Type      string   `yaml:"type"`
	MaxDraft  float64  `yaml:"max_draft"`
	ClauseIDs []string `yaml:"clause_ids"`
}

type portsFile struct {
	Load      []portRecord `yaml:"load"`
	Discharge []portRecord `yaml:"discharge"`
}

type cargoRecord struct {
	CargoID  string  `yaml:"cargo_id"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	StwLow   float64 `yaml:"stw_low"`
	StwHigh  float64 `yaml:"stw_high"`
	StwUnit  string  `yaml:"stw_unit"`
}

type cargoesFile struct {
	Cargoes []cargoRecord `yaml:"cargoes"`
}

type companyRecord struct {
	CompanyID          string `yaml:"company_id"`
	LegalName          string `yaml:"legal_name"`
	Country            string `yaml:"country"`
	City               string `yaml:"city"`
	PostalCode         string `yaml:"postal_code"`
	Address            string `yaml:"address"`
	RegistrationNumber string `yaml:"registration_number"`
	VAT                string `yaml:"vat"`
	OrSubDefault       bool   `yaml:"or_sub_default"`
	IsPrimary          bool   `yaml:"is_primary"`
}

type shareRecord struct {
	Party string  `yaml:"party"`
	Pct   float64 `yaml:"pct"`
}

type commissionRecord struct {
	Format    string        `yaml:"format"`
	TotalPct  float64       `yaml:"total_pct"`
	Breakdown []shareRecord `yaml:"breakdown"`
}

type chartererRecord struct {
	ChartererID   string           `yaml:"charterer_id"`
	ChartererName string           `yaml:"charterer_name"`
	Companies     []companyRecord  `yaml:"companies"`
	Commission    commissionRecord `yaml:"commission"`
}

type charterersFile struct {
	Charterers []chartererRecord `yaml:"charterers"`
}

type clauseRecord struct {
	ClauseID string `yaml:"clause_id"`
	Title    string `yaml:"title"`
	Text     string `yaml:"text"`
}

type clausesFile struct {
	Clauses []clauseRecord `yaml:"clauses"`
}

// LoadCatalog reads and validates the four reference files from fsys. The
// returned snapshot's version is a hash of the file contents.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	digest := xxhash.New()

	var ports portsFile
	var cargoes cargoesFile
	var charterers charterersFile
	var clauses clausesFile

	targets := map[string]any{
		PortsFile:      &ports,
		CargoesFile:    &cargoes,
		CharterersFile: &charterers,
		ClausesFile:    &clauses,
	}
	for _, name := range DataFiles {
		blob, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindInvalidReferenceData, Field: name, Message: "read failed", Err: err}
		}
		_, _ = digest.Write([]byte(name))
		_, _ = digest.Write(blob)
		if err := decodeStrict(blob, targets[name]); err != nil {
			return nil, &domain.Error{Kind: domain.KindInvalidReferenceData, Field: name, Message: "malformed yaml", Err: err}
		}
	}

	cat, err := NewCatalog(
		toPorts(ports.Load),
		toPorts(ports.Discharge),
		toCargoes(cargoes.Cargoes),
		toCharterers(charterers.Charterers),
		toClauses(clauses.Clauses),
	)
	if err != nil {
		return nil, err
	}
	cat.version = fmt.Sprintf("%016x", digest.Sum64())
	return cat, nil
}

func decodeStrict(blob []byte, dst any) error {
	dec := yaml.NewDecoder(bytes.NewReader(blob))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("file is empty")
		}
		return err
	}
	return nil
}

func toPorts(records []portRecord) []domain.Port {
	ports := make([]domain.Port, 0, len(records))
	for _, r := range records {
		ports = append(ports, domain.Port{
			PortID:    r.PortID,
			Name:      r.Name,
			Country:   r.Country,
			Region:    r.Region,
			TypeTag:   domain.PortType(r.Type),
			MaxDraft:  r.MaxDraft,
			ClauseIDs: r.ClauseIDs,
		})
	}
	return ports
}

func toCargoes(records []cargoRecord) []domain.Cargo {
	cargoes := make([]domain.Cargo, 0, len(records))
	for _, r := range records {
		cargoes = append(cargoes, domain.Cargo(r))
	}
	return cargoes
}

func toCharterers(records []chartererRecord) []domain.Charterer {
	charterers := make([]domain.Charterer, 0, len(records))
	for _, r := range records {
		companies := make([]domain.Company, 0, len(r.Companies))
		for _, c := range r.Companies {
			companies = append(companies, domain.Company(c))
		}
		shares := make([]domain.CommissionShare, 0, len(r.Commission.Breakdown))
		for _, s := range r.Commission.Breakdown {
			shares = append(shares, domain.CommissionShare(s))
		}
		charterers = append(charterers, domain.Charterer{
			ChartererID:   r.ChartererID,
			ChartererName: r.ChartererName,
			Companies:     companies,
			Commission: domain.Commission{
				Format:    domain.CommissionFormat(r.Commission.Format),
				TotalPct:  r.Commission.TotalPct,
				Breakdown: shares,
			},
		})
	}
	return charterers
}

func toClauses(records []clauseRecord) []domain.Clause {
	clauses := make([]domain.Clause, 0, len(records))
	for _, r := range records {
		clauses = append(clauses, domain.Clause(r))
	}
	return clauses
}
