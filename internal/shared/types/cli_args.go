package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	RoleName   string
	Accounts   []string
	Regions    []string
	ReportName string
	ReportType []string
	Dir        string
	Workers    int
	Debug      bool
}
