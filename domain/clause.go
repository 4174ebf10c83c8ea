package domain

type Clause struct {
	ClauseID string `json:"clause_id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// GroupKind names the section a clause is rendered in.
type GroupKind int

const (
	GroupRoute GroupKind = iota
	GroupPortRule
	GroupCargoRule
	GroupStandard

	// GroupCount is the number of sections in a ClauseSelection.
	GroupCount = int(GroupStandard) + 1
)

func (k GroupKind) String() string {
	switch k {
	case GroupRoute:
		return "route"
	case GroupPortRule:
		return "port"
	case GroupCargoRule:
		return "cargo"
	case GroupStandard:
		return "standard"
	}
	return "unknown"
}

// ClauseGroup is an ordered, duplicate-free list of clause ids together with
// the divider label printed above it.
type ClauseGroup struct {
	Kind      GroupKind
	Label     string
	ClauseIDs []string
}

// Add appends ids that are not already in the group.
func (g *ClauseGroup) Add(ids ...string) {
	for _, id := range ids {
		if g.Contains(id) {
			continue
		}
		g.ClauseIDs = append(g.ClauseIDs, id)
	}
}

func (g ClauseGroup) Contains(id string) bool {
	for _, existing := range g.ClauseIDs {
		if existing == id {
			return true
		}
	}
	return false
}

func (g ClauseGroup) Empty() bool {
	return len(g.ClauseIDs) == 0
}

// StandardClauseIDs close every offer, after the cargo clauses, in this order.
var StandardClauseIDs = []string{
	"STD-GSB",
	"STD-DEM-PAYMENT",
	"STD-ISM-ISPS",
	"STD-ARBITRATION",
}

// ClauseSelection is the output of clause selection. Groups are always in
// route, port, cargo, standard order. HolidayCalendar is empty unless the
// load port is Ukrainian.
type ClauseSelection struct {
	Groups          [GroupCount]ClauseGroup
	DemurrageLabel  string
	HolidayCalendar string
}

// Flatten returns every selected id in rendering order.
func (s ClauseSelection) Flatten() []string {
	ids := []string{}
	for _, g := range s.Groups {
		ids = append(ids, g.ClauseIDs...)
	}
	return ids
}
