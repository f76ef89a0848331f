package reporter

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/barrage/pkg/domain/model"
	"github.com/secmon-lab/barrage/pkg/domain/types"
	"github.com/secmon-lab/barrage/pkg/utils/safe"
)

// maxReportSize limits the decompressed size of a loaded report.
const maxReportSize = 512 << 20

// Save writes report as JSON to path. A ".gz" or ".zst" suffix compresses the file.
func Save(path string, report *model.AggregateReport) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(types.ErrOutputDir, "failed to create report file",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(f)

	w, closeWriter, err := compressor(path, f)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
	}
	if err := closeWriter(); err != nil {
		return goerr.Wrap(err, "failed to flush report", goerr.V("path", path))
	}
	return nil
}

// Load reads a report written by Save.
func Load(path string) (*model.AggregateReport, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(types.ErrInvalidReport, "failed to open report",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(f)

	r, closeReader, err := decompressor(path, f)
	if err != nil {
		return nil, err
	}
	defer closeReader()

	var report model.AggregateReport
	if err := json.NewDecoder(io.LimitReader(r, maxReportSize)).Decode(&report); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidReport, "failed to decode report",
			goerr.V("path", path),
			goerr.V("cause", err.Error()),
		)
	}
	if report.Sarif == nil {
		return nil, goerr.Wrap(types.ErrInvalidReport, "report has no sarif field", goerr.V("path", path))
	}
	return &report, nil
}

func compressor(path string, w io.Writer) (io.Writer, func() error, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := gzip.NewWriter(w)
		return zw, zw.Close, nil
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create zstd writer")
		}
		return zw, zw.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

func decompressor(path string, r io.Reader) (io.Reader, func(), error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, goerr.Wrap(types.ErrInvalidReport, "not a gzip file", goerr.V("path", path))
		}
		return zr, func() { safe.Close(zr) }, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, goerr.Wrap(types.ErrInvalidReport, "not a zstd file", goerr.V("path", path))
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}
