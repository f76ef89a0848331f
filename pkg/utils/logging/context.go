package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/secmon-lab/barrage/pkg/domain/types"
)

type ctxLoggerKey struct{}

// With returns a new context with logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger from context. If logger is not set, return default logger
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

type ctxScanIDKey struct{}

// CtxWithScanID stores the scan ID and attaches it to the context logger
func CtxWithScanID(ctx context.Context, id types.ScanID) context.Context {
	ctx = context.WithValue(ctx, ctxScanIDKey{}, id)
	return With(ctx, From(ctx).With("scan_id", id))
}

// CtxScanID returns the scan ID of the context, or an empty ID
func CtxScanID(ctx context.Context) types.ScanID {
	if id, ok := ctx.Value(ctxScanIDKey{}).(types.ScanID); ok {
		return id
	}
	return ""
}

type ctxTimeKey struct{}
type TimeFunc func() time.Time

// CtxTime returns time from context. If time is not set, return current time
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

// CtxWithTime returns a new context with time function
func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}
