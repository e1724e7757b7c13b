// Package version carries the beautyfinder build identity, stamped by
// the release pipeline via -ldflags and logged at startup.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
