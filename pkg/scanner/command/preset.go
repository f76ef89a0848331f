package command

import "github.com/secmon-lab/barrage/pkg/domain/types"

// Format is the output format of a command scanner.
type Format string

const (
	FormatSARIF Format = "sarif"
	FormatJSON  Format = "json"
)

const (
	// PlaceholderTarget is replaced with the scan target directory.
	PlaceholderTarget = "{target}"
	// PlaceholderOutput is replaced with the result file path. Commands without it report on stdout.
	PlaceholderOutput = "{output}"
)

// Spec describes how to run a scanner binary.
type Spec struct {
	Type   types.ScannerType
	Format Format
	// Command is the binary followed by its arguments. Arguments may contain placeholders.
	Command []string
	// ExcludeFlag is repeated with each ignore path when set.
	ExcludeFlag string
}

// Binary returns the executable name.
func (x Spec) Binary() string {
	if len(x.Command) == 0 {
		return ""
	}
	return x.Command[0]
}

// Presets are command scanners registered by default. They are skipped as missing when the
// binary is not installed.
var Presets = map[string]Spec{
	"semgrep": {
		Type:        types.ScannerTypeSAST,
		Format:      FormatSARIF,
		Command:     []string{"semgrep", "scan", "--sarif", "--quiet", "--metrics=off", "--output", PlaceholderOutput, PlaceholderTarget},
		ExcludeFlag: "--exclude",
	},
	"gitleaks": {
		Type:    types.ScannerTypeSecrets,
		Format:  FormatSARIF,
		Command: []string{"gitleaks", "detect", "--no-git", "--no-banner", "--exit-code", "0", "--source", PlaceholderTarget, "--report-format", "sarif", "--report-path", PlaceholderOutput},
	},
	"trivy": {
		Type:        types.ScannerTypeSBOM,
		Format:      FormatSARIF,
		Command:     []string{"trivy", "fs", "--quiet", "--scanners", "vuln,misconfig,secret", "--format", "sarif", "--output", PlaceholderOutput, PlaceholderTarget},
		ExcludeFlag: "--skip-dirs",
	},
}
