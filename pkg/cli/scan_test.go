package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/cli"
	"github.com/secmon-lab/barrage/pkg/domain/mock"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/usecase"
	urfave "github.com/urfave/cli/v3"
)

func newOutcome(exitCode int) *model.ScanOutcome {
	return &model.ScanOutcome{
		Report: &model.AggregateReport{
			Metadata: model.ReportMetadata{
				ScanID:  types.ScanID("scan-1"),
				Project: "barrage",
				Summary: model.SummaryStats{Actionable: 3},
			},
		},
		ReportPath:      "/tmp/out/barrage_aggregated_results.json",
		ReporterOutputs: []string{"/tmp/out/barrage_report.sarif"},
		ExitCode:        exitCode,
	}
}

func TestRunScan(t *testing.T) {
	ctx := context.Background()

	t.Run("print summary and paths", func(t *testing.T) {
		var buf bytes.Buffer
		uc := &mock.UseCaseMock{
			RunScanFunc: func(ctx context.Context, input *model.ScanInput) (*model.ScanOutcome, error) {
				gt.V(t, input.SourceDir).Equal("./src")
				return newOutcome(usecase.ExitCodeSuccess), nil
			},
		}

		err := cli.RunScanForTest(ctx, &urfave.Command{Writer: &buf}, uc, &model.ScanInput{SourceDir: "./src"})
		gt.NoError(t, err)
		gt.V(t, len(uc.RunScanCalls())).Equal(1)
		gt.S(t, buf.String()).Contains("barrage scan scan-1")
		gt.S(t, buf.String()).Contains("Aggregated results: /tmp/out/barrage_aggregated_results.json")
		gt.S(t, buf.String()).Contains("Report: /tmp/out/barrage_report.sarif")
	})

	t.Run("actionable exit code becomes an error", func(t *testing.T) {
		var buf bytes.Buffer
		uc := &mock.UseCaseMock{
			RunScanFunc: func(ctx context.Context, input *model.ScanInput) (*model.ScanOutcome, error) {
				return newOutcome(usecase.ExitCodeActionable), nil
			},
		}

		err := cli.RunScanForTest(ctx, &urfave.Command{Writer: &buf}, uc, &model.ScanInput{})
		gt.Error(t, err).Is(types.ErrActionableFindings)
		gt.V(t, cli.ExitCode(err)).Equal(usecase.ExitCodeActionable)
	})

	t.Run("scan error", func(t *testing.T) {
		var buf bytes.Buffer
		uc := &mock.UseCaseMock{
			RunScanFunc: func(ctx context.Context, input *model.ScanInput) (*model.ScanOutcome, error) {
				return nil, errors.New("dispatcher crashed")
			},
		}

		err := cli.RunScanForTest(ctx, &urfave.Command{Writer: &buf}, uc, &model.ScanInput{})
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("dispatcher crashed")
		gt.V(t, cli.ExitCode(err)).Equal(usecase.ExitCodeError)
		gt.V(t, buf.Len()).Equal(0)
	})
}
