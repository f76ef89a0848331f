package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	scanconfig "github.com/secmon-lab/barrage/pkg/config"
	"github.com/secmon-lab/barrage/pkg/infra"
	"github.com/urfave/cli/v3"
)

func scannersCommand() *cli.Command {
	var (
		dir        string
		configPath string
	)

	return &cli.Command{
		Name:  "scanners",
		Usage: "List available scanners",
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
			cfg, err := scanconfig.Load(configPath)
			if err != nil {
				return err
			}

			reg, err := newRegistry(infra.New().CommandRunner(), cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tNATIVE\tDEPENDENCY")
			for _, name := range reg.ScannerNames() {
				scanner, err := reg.NewScanner(name, cfg.Scanners[name])
				if err != nil {
					return err
				}
				dependency := "missing"
				if scanner.IsDependencySatisfied() {
					dependency = "ok"
				}
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", name, scanner.Info().Type, scanner.Info().Native, dependency)
			}
			return w.Flush()
		},
	}
}
