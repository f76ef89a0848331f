package safe

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/secmon-lab/barrage/pkg/utils/logging"
)

// Close safely closes the resource and logs error if any
func Close(closer io.Closer) {
	if closer != nil {
		if err := closer.Close(); err != nil {
			if err == io.EOF {
				return
			}
			logging.Default().Warn("Fail to close resource", slog.Any("error", err))
		}
	}
}

// Remove safely removes the file and logs error if any
func Remove(path string) {
	if err := os.Remove(path); err != nil {
		logging.Default().Warn("Fail to remove file", slog.Any("error", err))
	}
}

// RemoveAll safely removes the directory and logs error if any
func RemoveAll(path string) {
	if err := os.RemoveAll(path); err != nil {
		logging.Default().Warn("Fail to remove directory", slog.Any("error", err), slog.String("path", path))
	}
}

// Shutdown runs a flush or shutdown function and logs error if any
func Shutdown(ctx context.Context, name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	if err := fn(ctx); err != nil {
		logging.From(ctx).Warn("Fail to shutdown", slog.String("name", name), slog.Any("error", err))
	}
}
