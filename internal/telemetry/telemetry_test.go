package telemetry

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	closeLog, err := InitLogger(path)
	if err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	log.Printf("[Test] hello from the logger")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from the logger") {
		t.Fatalf("log file missing line: %q", data)
	}
}

func TestInitLoggerWithoutPathIsNoop(t *testing.T) {
	closeLog, err := InitLogger("")
	if err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	closeLog()
}

func TestInitTelemetryCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	cleanup, err := InitTelemetry(context.Background(),
		filepath.Join(dir, "otel", "traces.log"),
		filepath.Join(dir, "otel", "metrics.log"))
	if err != nil {
		t.Fatalf("InitTelemetry: %v", err)
	}
	cleanup()

	if _, err := os.Stat(filepath.Join(dir, "otel")); err != nil {
		t.Fatalf("expected telemetry directory: %v", err)
	}
}
