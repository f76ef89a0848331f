// Package reporter renders aggregate reports and persists them to files.
package reporter

import (
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/plugin"
)

// Default returns the built-in reporters.
func Default() []interfaces.Reporter {
	return []interfaces.Reporter{
		NewJSON(),
		NewSARIF(),
		NewSummary(),
	}
}

// Register adds the built-in reporters to reg.
func Register(reg *plugin.Registry) error {
	for _, r := range Default() {
		if err := reg.RegisterReporter(r); err != nil {
			return err
		}
	}
	return nil
}
