// Package buildinfo carries version metadata injected with -ldflags -X.
package buildinfo

var (
	Version   = "dev"
	Revision  = ""
	BuildDate = ""
)
