// Package telemetry sets up log rotation and OpenTelemetry exporters.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

const (
	serviceName    = "careerpath-backend"
	serviceVersion = "1.0.0"
	exportInterval = 10 * time.Second
)

func rotatingFile(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}, nil
}

// InitLogger points the standard logger at stdout and, when path is set,
// a rotating file as well. The returned func closes the file.
func InitLogger(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	file, err := rotatingFile(path)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, file))
	return func() {
		log.SetOutput(os.Stdout)
		if err := file.Close(); err != nil {
			log.Printf("WARN [Telemetry] failed to close log file: %v", err)
		}
	}, nil
}

// InitTelemetry installs global tracer and meter providers that export to
// rotating files. Instruments created through otel.Meter/otel.Tracer before
// this call are forwarded once the providers are set.
func InitTelemetry(ctx context.Context, tracesPath, metricsPath string) (func(), error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	traceFile, err := rotatingFile(tracesPath)
	if err != nil {
		return nil, err
	}
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	metricsFile, err := rotatingFile(metricsPath)
	if err != nil {
		return nil, err
	}
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(exportInterval))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("ERROR [Telemetry] failed to shutdown tracer provider: %v", err)
		}
		if err := mp.Shutdown(ctx); err != nil {
			log.Printf("ERROR [Telemetry] failed to shutdown meter provider: %v", err)
		}
		traceFile.Close()
		metricsFile.Close()
	}
	return cleanup, nil
}
