package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/barrage/pkg/cli/config"
	scanconfig "github.com/secmon-lab/barrage/pkg/config"
	"github.com/secmon-lab/barrage/pkg/domain/interfaces"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/reporter"
	"github.com/secmon-lab/barrage/pkg/usecase"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"github.com/secmon-lab/barrage/pkg/utils/tracing"
	"github.com/urfave/cli/v3"
)

func scanCommand() *cli.Command {
	var (
		bigQuery  config.BigQuery
		firestore config.Firestore
		storage   config.Storage

		input      model.ScanInput
		configPath string
		mode       string
		failOn     bool
		meta       model.GitMetadata
	)

	return &cli.Command{
		Name:    "scan",
		Aliases: []string{"sc"},
		Usage:   "Run the enabled scanners over a directory and merge their findings",
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "Path to directory to scan",
				Value:       ".",
				Destination: &input.SourceDir,
			},
			&cli.StringFlag{
				Name:        "converted-dir",
				Usage:       "Path to a directory of converted sources scanned as an additional target",
				Sources:     cli.EnvVars("BARRAGE_CONVERTED_DIR"),
				Destination: &input.ConvertedDir,
			},
			&cli.StringFlag{
				Name:        "output-dir",
				Usage:       "Directory to write scanner outputs and reports",
				Value:       "barrage-results",
				Sources:     cli.EnvVars("BARRAGE_OUTPUT_DIR"),
				Destination: &input.OutputDir,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to configuration file (default: .barrage.yaml in the scanned directory)",
				Sources:     cli.EnvVars("BARRAGE_CONFIG"),
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "Execution mode [sequential|parallel]",
				Value:       string(types.ExecutionModeParallel),
				Sources:     cli.EnvVars("BARRAGE_MODE"),
				Destination: &mode,
			},
			&cli.IntFlag{
				Name:        "max-workers",
				Usage:       "Maximum number of concurrent scanner jobs (0: configuration or number of CPUs)",
				Sources:     cli.EnvVars("BARRAGE_MAX_WORKERS"),
				Destination: &input.MaxWorkers,
			},
			&cli.DurationFlag{
				Name:        "job-timeout",
				Usage:       "Timeout of a single scanner job (0: no timeout)",
				Sources:     cli.EnvVars("BARRAGE_JOB_TIMEOUT"),
				Destination: &input.JobTimeout,
			},
			&cli.StringSliceFlag{
				Name:        "enable",
				Usage:       "Run only the given scanners",
				Destination: &input.Enabled,
			},
			&cli.StringSliceFlag{
				Name:        "exclude",
				Usage:       "Do not run the given scanners",
				Destination: &input.Excluded,
			},
			&cli.BoolFlag{
				Name:        "native-only",
				Usage:       "Run only scanners without external binaries",
				Destination: &input.NativeOnly,
			},
			&cli.BoolFlag{
				Name:        "ignore-suppressions",
				Usage:       "Report suppressed findings as actionable",
				Destination: &input.IgnoreSuppressions,
			},
			&cli.BoolFlag{
				Name:        "fail-on-findings",
				Usage:       "Exit with code 2 when actionable findings remain (default: configuration or true)",
				Sources:     cli.EnvVars("BARRAGE_FAIL_ON_FINDINGS"),
				Destination: &failOn,
			},
			&cli.StringSliceFlag{
				Name:        "reporter",
				Usage:       "Reporters to write (default: all)",
				Destination: &input.Reporters,
			},
			&cli.StringFlag{
				Name:        "project",
				Usage:       "Project name of the scan history (default: configuration, git remote or directory name)",
				Sources:     cli.EnvVars("BARRAGE_PROJECT"),
				Destination: &input.Project,
			},
			&cli.StringFlag{
				Name:        "metrics-file",
				Usage:       "Write Prometheus metrics of the scan to a textfile",
				Sources:     cli.EnvVars("BARRAGE_METRICS_FILE"),
				Destination: &input.MetricsFile,
			},
			&cli.StringFlag{
				Name:        "git-repo-url",
				Usage:       "Repository URL (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("BARRAGE_GIT_REPO_URL"),
				Destination: &meta.RepoURL,
			},
			&cli.StringFlag{
				Name:        "git-branch",
				Usage:       "Branch name (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("BARRAGE_GIT_BRANCH"),
				Destination: &meta.Branch,
			},
			&cli.StringFlag{
				Name:        "git-commit",
				Usage:       "Commit ID (auto-detect from git if not specified)",
				Sources:     cli.EnvVars("BARRAGE_GIT_COMMIT"),
				Destination: &meta.CommitID,
			},
		}, bigQuery.Flags(), firestore.Flags(), storage.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			input.Mode = types.ExecutionMode(mode)
			if c.IsSet("fail-on-findings") {
				input.FailOnFindings = &failOn
			}

			if configPath == "" {
				configPath = scanconfig.Find(input.SourceDir)
			}
			cfg, err := scanconfig.Load(configPath)
			if err != nil {
				return err
			}
			input.Config = cfg

			if err := DetectGitMetadata(ctx, input.SourceDir, &meta); err != nil {
				return err
			}
			input.Git = &meta
			if input.Project == "" && cfg.ProjectName == "" {
				input.Project = RepoNameFromURL(meta.RepoURL)
			}

			logging.Default().Info("Starting scan",
				slog.String("dir", input.SourceDir),
				slog.String("output_dir", input.OutputDir),
				slog.String("config", configPath),
				slog.String("mode", mode),
				slog.String("project", input.Project),
				slog.Any("git", meta),
				slog.Any("bigquery", &bigQuery),
				slog.Any("firestore", &firestore),
				slog.Any("storage", &storage),
			)

			clients, err := newClients(ctx, &bigQuery, &firestore, &storage)
			if err != nil {
				return err
			}
			reg, err := newRegistry(clients.CommandRunner(), cfg)
			if err != nil {
				return err
			}

			uc := usecase.New(reg, clients, usecase.WithTracer(tracing.Tracer()))
			return runScan(ctx, c, uc, &input)
		},
	}
}

func runScan(ctx context.Context, c *cli.Command, uc interfaces.UseCase, input *model.ScanInput) error {
	started := time.Now()
	outcome, err := uc.RunScan(ctx, input)
	if err != nil {
		return goerr.Wrap(err, "failed to run scan", goerr.V("dir", input.SourceDir))
	}

	summary, err := reporter.NewSummary().Report(outcome.Report)
	if err != nil {
		return err
	}

	w := c.Root().Writer
	fmt.Fprint(w, string(summary))
	for _, warn := range outcome.ExpirationWarnings {
		fmt.Fprintf(w, "WARNING: %s\n", warn.Message())
	}
	fmt.Fprintf(w, "\nAggregated results: %s\n", outcome.ReportPath)
	for _, path := range outcome.ReporterOutputs {
		fmt.Fprintf(w, "Report: %s\n", path)
	}

	logging.Default().Info("Scan finished",
		slog.String("scan_id", outcome.Report.Metadata.ScanID.String()),
		slog.Int("actionable", outcome.Report.Metadata.Summary.Actionable),
		slog.Int("exit_code", outcome.ExitCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	if outcome.ExitCode == usecase.ExitCodeActionable {
		return goerr.Wrap(types.ErrActionableFindings, "scan found actionable findings",
			goerr.V("actionable", outcome.Report.Metadata.Summary.Actionable))
	}
	return nil
}
