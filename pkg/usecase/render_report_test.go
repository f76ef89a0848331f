package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/barrage/pkg/domain/mock"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
)

func TestRenderReport(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t, newScanner("alpha", true, counts(map[string]any{"high": 1})))
	uc := newUseCase(reg)

	input := newInput(t)
	outcome := gt.R1(uc.RunScan(ctx, input)).NoError(t)

	t.Run("render into another directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "rendered")
		outputs := gt.R1(uc.RenderReport(ctx, &model.RenderInput{
			ReportPath: outcome.ReportPath,
			OutputDir:  dir,
			Reporters:  []string{"sarif", "summary"},
		})).NoError(t)

		gt.V(t, outputs).Equal([]string{
			filepath.Join(dir, "barrage_report.sarif"),
			filepath.Join(dir, "barrage_report.txt"),
		})
		data := gt.R1(os.ReadFile(outputs[1])).NoError(t)
		gt.S(t, string(data)).Contains("alpha")
	})

	t.Run("output directory defaults to the report directory", func(t *testing.T) {
		outputs := gt.R1(uc.RenderReport(ctx, &model.RenderInput{
			ReportPath: outcome.ReportPath,
			Reporters:  []string{"json"},
		})).NoError(t)
		gt.V(t, outputs).Equal([]string{filepath.Join(input.OutputDir, "barrage_report.json")})
	})

	t.Run("missing report", func(t *testing.T) {
		_, err := uc.RenderReport(ctx, &model.RenderInput{ReportPath: filepath.Join(t.TempDir(), "none.json")})
		gt.True(t, errors.Is(err, types.ErrInvalidReport))
	})

	t.Run("empty report path", func(t *testing.T) {
		_, err := uc.RenderReport(ctx, &model.RenderInput{})
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestRenderReportReporterFailure(t *testing.T) {
	ctx := context.Background()
	reg := newRegistry(t, newScanner("alpha", true, counts(map[string]any{"high": 1})))
	broken := &mock.ReporterMock{
		NameFunc:      func() string { return "broken" },
		ExtensionFunc: func() string { return "out" },
		ReportFunc: func(report *model.AggregateReport) ([]byte, error) {
			return nil, errors.New("template error")
		},
	}
	gt.NoError(t, reg.RegisterReporter(broken))
	uc := newUseCase(reg)

	input := newInput(t)
	input.Reporters = []string{"json"}
	outcome := gt.R1(uc.RunScan(ctx, input)).NoError(t)

	_, err := uc.RenderReport(ctx, &model.RenderInput{
		ReportPath: outcome.ReportPath,
		Reporters:  []string{"broken"},
	})
	gt.Error(t, err)
	gt.V(t, len(broken.ReportCalls())).Equal(1)
	gt.V(t, broken.ReportCalls()[0].Report.Metadata.ScanID).Equal(outcome.Report.Metadata.ScanID)

	_, err = os.Stat(filepath.Join(input.OutputDir, "barrage_report.out"))
	gt.True(t, errors.Is(err, os.ErrNotExist))
}
