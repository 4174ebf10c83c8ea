// Package data holds the reference tables shipped with the binary. They are
// used whenever no data directory is configured.
package data

import "embed"

//go:embed *.yaml
var Files embed.FS
