package cli

import (
	"context"
	"fmt"

	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/infra"
	"github.com/secmon-lab/barrage/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func reportCommand() *cli.Command {
	var input model.RenderInput

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Render reports from a persisted aggregated result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "Path to barrage_aggregated_results.json (.gz and .zst are decompressed)",
				Required:    true,
				Destination: &input.ReportPath,
			},
			&cli.StringFlag{
				Name:        "output-dir",
				Usage:       "Directory to write reports (default: directory of the input)",
				Destination: &input.OutputDir,
			},
			&cli.StringSliceFlag{
				Name:        "reporter",
				Usage:       "Reporters to write (default: all)",
				Destination: &input.Reporters,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			clients := infra.New()
			reg, err := newRegistry(clients.CommandRunner(), nil)
			if err != nil {
				return err
			}

			paths, err := usecase.New(reg, clients).RenderReport(ctx, &input)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Fprintf(c.Root().Writer, "Report: %s\n", path)
			}
			return nil
		},
	}
}
