package model

// ScanConfig is the content of the scan configuration file.
type ScanConfig struct {
	ProjectName    string                   `yaml:"project_name" json:"projectName,omitempty"`
	FailOnFindings *bool                    `yaml:"fail_on_findings" json:"failOnFindings,omitempty"`
	Global         GlobalConfig             `yaml:"global" json:"global"`
	Scanners       map[string]ScannerConfig `yaml:"scanners" json:"scanners,omitempty" validate:"dive"`
}

type GlobalConfig struct {
	SeverityThreshold string        `yaml:"severity_threshold" json:"severityThreshold,omitempty"`
	MaxWorkers        int           `yaml:"max_workers" json:"maxWorkers,omitempty" validate:"gte=0,lte=256"`
	IgnorePaths       []IgnorePath  `yaml:"ignore_paths" json:"ignorePaths,omitempty" validate:"dive"`
	Suppressions      []Suppression `yaml:"suppressions" json:"suppressions,omitempty" validate:"dive"`
}

// ScannerConfig configures one scanner. Command scanners declared only in the configuration use Type "command".
type ScannerConfig struct {
	Enabled     *bool          `yaml:"enabled" json:"enabled,omitempty"`
	Type        string         `yaml:"type" json:"type,omitempty" validate:"omitempty,oneof=command"`
	ScannerType string         `yaml:"scanner_type" json:"scannerType,omitempty" validate:"omitempty,oneof=SAST SBOM SECRETS IAC CUSTOM"`
	Command     []string       `yaml:"command" json:"command,omitempty"`
	Format      string         `yaml:"format" json:"format,omitempty" validate:"omitempty,oneof=sarif json"`
	Options     ScannerOptions `yaml:"options" json:"options"`
}

type ScannerOptions struct {
	SeverityThreshold string   `yaml:"severity_threshold" json:"severityThreshold,omitempty"`
	Args              []string `yaml:"args" json:"args,omitempty"`
}

// IsEnabled returns false only when the configuration explicitly disables the scanner.
func (x ScannerConfig) IsEnabled() bool {
	return x.Enabled == nil || *x.Enabled
}

// ShouldFailOnFindings returns the configured behavior, true when unset.
func (x *ScanConfig) ShouldFailOnFindings() bool {
	if x == nil || x.FailOnFindings == nil {
		return true
	}
	return *x.FailOnFindings
}
