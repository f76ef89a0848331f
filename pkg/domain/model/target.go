package model

import "github.com/secmon-lab/barrage/pkg/domain/types"

// ScanTarget is a directory handed to scanners together with its kind.
type ScanTarget struct {
	Path string           `json:"path"`
	Kind types.TargetKind `json:"kind"`
}
