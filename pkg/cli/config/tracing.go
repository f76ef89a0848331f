package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/barrage/pkg/utils/tracing"
	"github.com/urfave/cli/v3"
)

type Tracing struct {
	endpoint string
}

func (x *Tracing) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "otel-endpoint",
			Usage:       "OTLP/HTTP endpoint URL to export scan traces",
			Category:    "Tracing",
			Sources:     cli.EnvVars("BARRAGE_OTEL_ENDPOINT"),
			Destination: &x.endpoint,
		},
	}
}

func (x *Tracing) Configure(ctx context.Context) (tracing.ShutdownFunc, error) {
	return tracing.Setup(ctx, x.endpoint)
}

func (x *Tracing) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("endpoint", x.endpoint),
	)
}
