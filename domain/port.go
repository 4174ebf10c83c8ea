package domain

// PortType classifies a port for clause selection. Every port record carries
// exactly one.
type PortType string

const (
	PortTypeDanube         PortType = "DANUBE"
	PortTypePOC            PortType = "POC"
	PortTypeEgyptDischarge PortType = "EGYPT-DISCHARGE"
	PortTypeOther          PortType = "OTHER"
)

// Valid reports whether t is one of the known tags.
func (t PortType) Valid() bool {
	switch t {
	case PortTypeDanube, PortTypePOC, PortTypeEgyptDischarge, PortTypeOther:
		return true
	}
	return false
}

// PortRole selects the load or the discharge catalog.
type PortRole string

const (
	PortRoleLoad      PortRole = "load"
	PortRoleDischarge PortRole = "discharge"
)

type Port struct {
	PortID    string   `json:"port_id"`
	Name      string   `json:"name"`
	Country   string   `json:"country"`
	Region    string   `json:"region"`
	TypeTag   PortType `json:"port_type"`
	MaxDraft  float64  `json:"max_draft"`
	ClauseIDs []string `json:"clause_ids"`
}
