package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Severity is the normalized severity bucket of a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Severities lists all buckets from the most to the least severe.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

var severityNames = map[Severity]string{
	SeverityInfo:     "info",
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

func (x Severity) String() string {
	if name, ok := severityNames[x]; ok {
		return name
	}
	return "info"
}

// ParseSeverity converts a bucket name (case insensitive) into Severity.
func ParseSeverity(s string) (Severity, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for sev, name := range severityNames {
		if name == key {
			return sev, true
		}
	}
	return SeverityInfo, false
}

func (x Severity) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Severity) UnmarshalText(b []byte) error {
	sev, ok := ParseSeverity(string(b))
	if !ok {
		return goerr.New("unknown severity", goerr.V("value", string(b)))
	}
	*x = sev
	return nil
}
