package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidOption is returned when a command line option or environment value is invalid.
	ErrInvalidOption = goerr.New("invalid option")

	// ErrInvalidConfig is returned when the scan configuration file cannot be accepted. A scan never starts with an invalid configuration.
	ErrInvalidConfig = goerr.New("invalid configuration")

	// ErrNoScanner is returned when no scanner plugin is registered.
	ErrNoScanner = goerr.New("no scanner registered")

	// ErrOutputDir is returned when the output directory cannot be created or written.
	ErrOutputDir = goerr.New("output directory is not available")

	// ErrInvalidReport is returned when a persisted aggregate report cannot be decoded.
	ErrInvalidReport = goerr.New("invalid aggregate report")

	// ErrActionableFindings is returned by the scan command when actionable findings remain and the run is configured to fail on them.
	ErrActionableFindings = goerr.New("actionable findings detected")
)
