package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Threshold is the minimum severity that makes a finding actionable. ALL also includes informational findings.
type Threshold int

const (
	ThresholdAll Threshold = iota
	ThresholdLow
	ThresholdMedium
	ThresholdHigh
	ThresholdCritical
)

// DefaultThreshold is used when neither the scanner nor the configuration sets a threshold.
const DefaultThreshold = ThresholdMedium

var thresholdNames = map[Threshold]string{
	ThresholdAll:      "ALL",
	ThresholdLow:      "LOW",
	ThresholdMedium:   "MEDIUM",
	ThresholdHigh:     "HIGH",
	ThresholdCritical: "CRITICAL",
}

func (x Threshold) String() string {
	if name, ok := thresholdNames[x]; ok {
		return name
	}
	return thresholdNames[DefaultThreshold]
}

// MinSeverity returns the lowest severity bucket counted by the threshold.
func (x Threshold) MinSeverity() Severity {
	switch x {
	case ThresholdAll:
		return SeverityInfo
	case ThresholdLow:
		return SeverityLow
	case ThresholdHigh:
		return SeverityHigh
	case ThresholdCritical:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

// Includes reports whether findings of sev are actionable under the threshold.
func (x Threshold) Includes(sev Severity) bool {
	return sev >= x.MinSeverity()
}

// ParseThreshold converts a threshold name (case insensitive) into Threshold.
func ParseThreshold(s string) (Threshold, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range thresholdNames {
		if name == key {
			return t, nil
		}
	}
	return DefaultThreshold, goerr.Wrap(ErrInvalidConfig, "unknown severity threshold",
		goerr.V("value", s),
		goerr.V("allowed", "ALL, LOW, MEDIUM, HIGH, CRITICAL"),
	)
}

func (x Threshold) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Threshold) UnmarshalText(b []byte) error {
	t, err := ParseThreshold(string(b))
	if err != nil {
		return err
	}
	*x = t
	return nil
}
