// Package threshold decides which findings are actionable and derives verdicts from severity histograms.
package threshold

import (
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// Evaluate counts findings at or above the threshold. ALL counts every bucket including info.
// The result never increases when the threshold is raised.
func Evaluate(h types.SeverityHistogram, t types.Threshold) int {
	return Filter(h, t).Total()
}

// Filter returns the part of h that is actionable under t.
func Filter(h types.SeverityHistogram, t types.Threshold) types.SeverityHistogram {
	var out types.SeverityHistogram
	for _, sev := range types.Severities {
		if t.Includes(sev) {
			out.Add(sev, h.Get(sev))
		}
	}
	return out
}

// Status returns failed for any critical or high finding, warning for medium only, else passed.
func Status(h types.SeverityHistogram) types.ScanStatus {
	switch {
	case h.Critical > 0 || h.High > 0:
		return types.ScanStatusFailed
	case h.Medium > 0:
		return types.ScanStatusWarning
	default:
		return types.ScanStatusPassed
	}
}
