package dispatch

import (
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// EnumerateTargets lists the directories to scan. The source directory is always a target;
// the converted directory is added when set. Targets are listed even if they do not exist
// so that each scanner reports a skipped result for them.
func EnumerateTargets(sourceDir, convertedDir string) []model.ScanTarget {
	targets := []model.ScanTarget{
		{Path: sourceDir, Kind: types.TargetKindSource},
	}
	if convertedDir != "" {
		targets = append(targets, model.ScanTarget{Path: convertedDir, Kind: types.TargetKindConverted})
	}
	return targets
}
