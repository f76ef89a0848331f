package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

// Thresholds returns the global threshold (nil when unset) and per-scanner overrides.
func Thresholds(cfg *model.ScanConfig) (*types.Threshold, map[string]types.Threshold, error) {
	var global *types.Threshold
	if cfg.Global.SeverityThreshold != "" {
		t, err := types.ParseThreshold(cfg.Global.SeverityThreshold)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "global.severity_threshold")
		}
		global = &t
	}

	overrides := make(map[string]types.Threshold)
	for name, sc := range cfg.Scanners {
		if sc.Options.SeverityThreshold == "" {
			continue
		}
		t, err := types.ParseThreshold(sc.Options.SeverityThreshold)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "scanner severity_threshold", goerr.V("scanner", name))
		}
		overrides[name] = t
	}

	return global, overrides, nil
}
