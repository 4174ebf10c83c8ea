package service

import "time"

const (
	DefaultCacheTTL = 24 * time.Hour // rendered offers are cached per catalog version
	DateLayout      = "2006-01-02"

	// width of the box-drawing rule between sections
	sectionRuleWidth = 43
)
