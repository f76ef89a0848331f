package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/reporter"
	"github.com/secmon-lab/barrage/pkg/utils/logging"
	"github.com/secmon-lab/barrage/pkg/utils/safe"
)

// RenderReport renders a persisted aggregate report again with the selected reporters.
// The output directory defaults to the directory of the report file.
func (x *UseCase) RenderReport(ctx context.Context, input *model.RenderInput) ([]string, error) {
	if input.ReportPath == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "report path is empty")
	}

	report, err := reporter.Load(input.ReportPath)
	if err != nil {
		return nil, err
	}

	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(input.ReportPath)
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, goerr.Wrap(types.ErrOutputDir, "failed to create output directory",
			goerr.V("dir", outputDir),
			goerr.V("cause", err.Error()),
		)
	}

	return x.writeReports(ctx, report, outputDir, input.Reporters)
}

// writeReports runs reporters over report and writes one file per reporter. An empty name list
// selects every registered reporter.
func (x *UseCase) writeReports(ctx context.Context, report *model.AggregateReport, outputDir string, names []string) ([]string, error) {
	if len(names) == 0 {
		names = x.registry.ReporterNames()
	}

	var outputs []string
	for _, name := range names {
		r, err := x.registry.Reporter(name)
		if err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "unknown reporter",
				goerr.V("reporter", name),
				goerr.V("available", x.registry.ReporterNames()),
			)
		}

		data, err := r.Report(report)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to render report", goerr.V("reporter", name))
		}

		path := filepath.Join(outputDir, ReportFilePrefix+"."+r.Extension())
		if err := writeFile(path, data); err != nil {
			return nil, err
		}
		logging.From(ctx).Info("report written", "reporter", name, "path", path)
		outputs = append(outputs, path)
	}

	return outputs, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(types.ErrOutputDir, "failed to create report file",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(f)

	if _, err := f.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write report file", goerr.V("path", path))
	}
	return nil
}
