package cli

// Version and Date should be set at build time using ldflags, e.g.:
//
//	-ldflags "-X 'github.com/flarebyte/ptah-forge/cli.Version=1.2.3' -X 'github.com/flarebyte/ptah-forge/cli.Date=2026-08-29'"
var (
	Version string
	Date    string
)
