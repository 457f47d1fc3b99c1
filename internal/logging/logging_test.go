package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		" WARN ":  log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"":        log.InfoLevel,
		"loud":    log.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.WarnLevel)
	logger.Info("hidden")
	logger.Error("Error saving todos", "key", "TodoApp")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, "Error saving todos") || !strings.Contains(out, "key=TodoApp") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todo.log")
	logger, closer, err := Open(Options{Path: path, Level: "info", Verbose: true})
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("debug enabled by verbose")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "debug enabled by verbose") {
		t.Fatalf("log file = %q", data)
	}
}

func TestOpenWithoutPathDiscards(t *testing.T) {
	logger, closer, err := Open(Options{})
	if err != nil || logger == nil || closer == nil {
		t.Fatalf("Open = %v %v %v", logger, closer, err)
	}
	logger.Info("nowhere")
}
