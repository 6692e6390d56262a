package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	RoleName   string   `json:"role_name" yaml:"role_name" toml:"role_name"`
	Accounts   []string `json:"accounts" yaml:"accounts" toml:"accounts"`
	Regions    []string `json:"regions" yaml:"regions" toml:"regions"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
	Workers    int      `json:"workers" yaml:"workers" toml:"workers"`
	Debug      bool     `json:"debug_logging" yaml:"debug_logging" toml:"debug_logging"`
}
