package model

import (
	"github.com/secmon-lab/barrage/pkg/domain/model/sarif"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// Property keys attached to every aggregated finding.
const (
	PropScanner        = "scanner"
	PropTargetKind     = "targetKind"
	PropSeverity       = "severity"
	PropNativeSeverity = "nativeSeverity"
	PropFindingID      = "findingId"
)

// FindingOrigin identifies which scanner and target kind produced an aggregated finding.
type FindingOrigin struct {
	Scanner  string
	Kind     types.TargetKind
	Severity types.Severity
}

// OriginOf reads the origin tags written by the aggregator.
func OriginOf(r *sarif.Result) (FindingOrigin, bool) {
	scanner := r.Property(PropScanner)
	if scanner == "" {
		return FindingOrigin{}, false
	}
	sev, _ := types.ParseSeverity(r.Property(PropSeverity))
	return FindingOrigin{
		Scanner:  scanner,
		Kind:     types.TargetKind(r.Property(PropTargetKind)),
		Severity: sev,
	}, true
}
