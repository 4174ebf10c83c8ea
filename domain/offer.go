package domain

import "github.com/shopspring/decimal"

// OfferRequest is the inbound record for one firm offer. Laycan dates use the
// YYYY-MM-DD layout.
type OfferRequest struct {
	LoadPort          string   `json:"load_port" validate:"required"`
	DischargePort     string   `json:"discharge_port" validate:"required"`
	Cargo             string   `json:"cargo" validate:"required"`
	Quantity          int      `json:"quantity" validate:"gt=0"`
	QuantityTolerance *float64 `json:"quantity_tolerance,omitempty" validate:"omitempty,gte=0,lte=10"`
	FreightRate       float64  `json:"freight_rate" validate:"gt=0"`
	DemurrageRate     float64  `json:"demurrage_rate" validate:"gt=0"`
	LaycanStart       string   `json:"laycan_start" validate:"required,datetime=2006-01-02"`
	LaycanEnd         string   `json:"laycan_end" validate:"required,datetime=2006-01-02"`
	ChartererID       string   `json:"charterer_id,omitempty"`
	OrSub             bool     `json:"or_sub"`
}

type OfferSummary struct {
	Route            string          `json:"route"`
	CargoDescription string          `json:"cargo_description"`
	TotalFreight     decimal.Decimal `json:"total_freight"`
	PortType         PortType        `json:"port_type"`
	ClausesIncluded  []string        `json:"clauses_included"`
	ClausesCount     int             `json:"clauses_count"`
}

type OfferResult struct {
	FirmOfferText string       `json:"firm_offer_text"`
	Summary       OfferSummary `json:"summary"`
}
