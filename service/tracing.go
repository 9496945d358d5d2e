package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/breaklikeafish/UD-TED/domain"
	"github.com/breaklikeafish/UD-TED/internal/version"
)

// StartFileTracing installs a global tracer provider that writes every
// finished span as JSON to path. The returned function flushes the spans,
// closes the file and restores the previous provider.
func StartFileTracing(path string) (func(context.Context) error, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, domain.NewOutputError(fmt.Sprintf("failed to create trace file: %s", path), err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return nil, domain.NewOutputError("failed to create trace exporter", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "udted"),
			attribute.String("service.version", version.Short()),
		)),
	)

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)

	return func(ctx context.Context) error {
		otel.SetTracerProvider(previous)
		err := provider.Shutdown(ctx)
		if cerr := file.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		if err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to write trace file: %s", path), err)
		}
		return nil
	}, nil
}
