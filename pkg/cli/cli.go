package cli

import (
	"context"
	"errors"

	"github.com/secmon-lab/barrage/pkg/cli/config"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/usecase"
	"github.com/secmon-lab/barrage/pkg/utils/errutil"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"github.com/secmon-lab/barrage/pkg/utils/tracing"
	"github.com/urfave/cli/v3"
)

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var (
		logLevel  string
		logFormat string
		logOutput string

		sentryCfg  config.Sentry
		tracingCfg config.Tracing
		shutdown   tracing.ShutdownFunc
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [trace|debug|info|warn|error]",
			Aliases:     []string{"l"},
			Sources:     cli.EnvVars("BARRAGE_LOG_LEVEL"),
			Destination: &logLevel,
			Value:       "info",
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [text|json]",
			Aliases:     []string{"f"},
			Sources:     cli.EnvVars("BARRAGE_LOG_FORMAT"),
			Destination: &logFormat,
			Value:       "text",
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output [-|stdout|stderr|<file>]",
			Aliases:     []string{"o"},
			Sources:     cli.EnvVars("BARRAGE_LOG_OUTPUT"),
			Destination: &logOutput,
			Value:       "stderr",
		},
	}
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, tracingCfg.Flags()...)

	app := &cli.Command{
		Name:  "barrage",
		Usage: "Run multiple security scanners and merge their findings",
		Flags: flags,
		Commands: []*cli.Command{
			scanCommand(),
			reportCommand(),
			validateCommand(),
			scannersCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := logging.Configure(logFormat, logLevel, logOutput); err != nil {
				return ctx, err
			}
			if err := sentryCfg.Configure(ctx); err != nil {
				return ctx, err
			}

			fn, err := tracingCfg.Configure(ctx)
			if err != nil {
				return ctx, err
			}
			shutdown = fn

			logging.Default().Debug("barrage started", "sentry", &sentryCfg, "tracing", &tracingCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if shutdown != nil {
				if err := shutdown(ctx); err != nil {
					logging.Default().Warn("failed to shutdown tracer provider", "error", err)
				}
			}
			return nil
		},
	}

	defer sentryCfg.Flush()

	if err := app.Run(context.Background(), argv); err != nil {
		if !errors.Is(err, types.ErrActionableFindings) {
			errutil.HandleError(context.Background(), "fatal error", err)
		}
		return err
	}

	return nil
}

// ExitCode maps the error returned by Run to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return usecase.ExitCodeSuccess
	case errors.Is(err, types.ErrActionableFindings):
		return usecase.ExitCodeActionable
	default:
		return usecase.ExitCodeError
	}
}
