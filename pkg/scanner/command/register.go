package command

import (
	"maps"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/plugin"
)

// TypeCommand is the scanner type of command scanners declared in the configuration.
const TypeCommand = "command"

// Register adds the presets and the command scanners declared in cfg to reg.
func Register(reg *plugin.Registry, runner interfaces.CommandRunner, cfg *model.ScanConfig) error {
	for _, name := range slices.Sorted(maps.Keys(Presets)) {
		if err := reg.RegisterScanner(name, Factory(name, Presets[name], runner)); err != nil {
			return err
		}
	}

	if cfg == nil {
		return nil
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Scanners)) {
		sc := cfg.Scanners[name]
		if sc.Type != TypeCommand {
			continue
		}
		if _, ok := Presets[name]; ok {
			continue
		}
		if err := reg.RegisterScanner(name, Factory(name, Spec{}, runner)); err != nil {
			return goerr.Wrap(err, "failed to register command scanner", goerr.V("scanner", name))
		}
	}
	return nil
}

// Factory creates a plugin.ScannerFactory for base. Settings in the scanner configuration override base.
func Factory(name string, base Spec, runner interfaces.CommandRunner) plugin.ScannerFactory {
	return func(cfg model.ScannerConfig) (interfaces.Scanner, error) {
		spec := base
		if len(cfg.Command) > 0 {
			spec.Command = cfg.Command
			spec.ExcludeFlag = ""
		}
		if cfg.Format != "" {
			spec.Format = Format(cfg.Format)
		}
		if cfg.ScannerType != "" {
			spec.Type = types.ScannerType(cfg.ScannerType)
		}
		return New(name, spec, runner, WithArgs(cfg.Options.Args))
	}
}
