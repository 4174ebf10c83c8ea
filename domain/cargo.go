package domain

const CargoCategoryGrain = "grain"

type Cargo struct {
	CargoID  string  `json:"cargo_id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	StwLow   float64 `json:"stw_low"`
	StwHigh  float64 `json:"stw_high"`
	StwUnit  string  `json:"stw_unit"`
}

// Clause ids appended for grain cargoes, in rendering order.
var GrainClauseIDs = []string{
	"GRAIN-PREV-CARGO",
	"GRAIN-TRIMMING",
	"GRAIN-SURVEYOR",
}

// GrainDocsTimeClauseID is added for grain discharged at Egyptian ports.
const GrainDocsTimeClauseID = "GRAIN-DOCS-TIME"
