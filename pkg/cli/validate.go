package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	scanconfig "github.com/secmon-lab/barrage/pkg/config"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/infra"
	"github.com/urfave/cli/v3"
)

func validateCommand() *cli.Command {
	var (
		dir        string
		configPath string
	)

	return &cli.Command{
		Name:  "validate",
		Usage: "Check the configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Directory to look up the default configuration file",
				Value:       ".",
				Destination: &dir,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to configuration file",
				Sources:     cli.EnvVars("BARRAGE_CONFIG"),
				Destination: &configPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if configPath == "" {
				configPath = scanconfig.Find(dir)
			}
			if configPath == "" {
				return goerr.Wrap(types.ErrInvalidOption, "no configuration file found", goerr.V("dir", dir))
			}

			cfg, err := scanconfig.Load(configPath)
			if err != nil {
				return err
			}
			if err := checkScanners(cfg); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "%s is valid\n", configPath)
			return nil
		},
	}
}

// checkScanners reports scanners that are unknown or cannot be created from their settings.
func checkScanners(cfg *model.ScanConfig) error {
	reg, err := newRegistry(infra.New().CommandRunner(), cfg)
	if err != nil {
		return err
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.Scanners)) {
		if !reg.HasScanner(name) {
			return goerr.Wrap(types.ErrInvalidConfig, "unknown scanner in configuration", goerr.V("scanner", name))
		}
		if _, err := reg.NewScanner(name, cfg.Scanners[name]); err != nil {
			return goerr.Wrap(types.ErrInvalidConfig, "invalid scanner settings",
				goerr.V("scanner", name), goerr.V("error", err.Error()))
		}
	}
	return nil
}
