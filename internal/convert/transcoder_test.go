package convert

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/model"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// writeFakeEngine installs a shell script standing in for the transcoding
// engine so tests run without ffmpeg installed
func writeFakeEngine(t *testing.T, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake engine requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "fake-engine.sh")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake engine: %v", err)
	}
	return path
}

func newTestTask(t *testing.T) *model.ConversionTask {
	t.Helper()

	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "song.flac")
	if err := os.WriteFile(sourcePath, []byte("flac-bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}

	return &model.ConversionTask{
		ID:         "convert-test",
		SourcePath: sourcePath,
		OutputPath: filepath.Join(dir, "song.mp3"),
		Bitrate:    model.DefaultBitrate,
	}
}

func TestNewTranscoder_Defaults(t *testing.T) {
	tr := NewTranscoder("", 0, nil)

	if tr.binary != DefaultBinary {
		t.Errorf("Expected binary %s, got %s", DefaultBinary, tr.binary)
	}

	if tr.timeout != DefaultTimeout {
		t.Errorf("Expected timeout %s, got %s", DefaultTimeout, tr.timeout)
	}

	if tr.log == nil {
		t.Error("Expected a logger to be set")
	}
}

func TestBuildEngineArgs(t *testing.T) {
	args := BuildEngineArgs("/music/song.flac", "/music/song.mp3.part", model.Bitrate256)

	expectedArgs := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "/music/song.flac",
		"-y",
		"-map_metadata", "-1",
		"-vn",
		"-c:a", AudioCodec,
		"-b:a", "256k",
		"-f", OutputFormat,
		"/music/song.mp3.part",
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}

	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestTranscoder_Available_MissingEngine(t *testing.T) {
	tr := NewTranscoder("definitely-not-a-real-engine-8f2a", 0, testLogger())

	if err := tr.Available(); err == nil {
		t.Error("Expected error for missing engine, got nil")
	}
}

func TestTranscoder_Convert_MissingEngine(t *testing.T) {
	tr := NewTranscoder("definitely-not-a-real-engine-8f2a", 0, testLogger())
	task := newTestTask(t)

	err := tr.Convert(context.Background(), task)
	if err == nil {
		t.Fatal("Expected error for missing engine, got nil")
	}

	var trErr *TranscodeError
	if !errors.As(err, &trErr) {
		t.Fatalf("Expected TranscodeError, got %T", err)
	}

	if trErr.Path != task.SourcePath {
		t.Errorf("Expected error path %s, got %s", task.SourcePath, trErr.Path)
	}
}

func TestTranscoder_Convert_Success(t *testing.T) {
	// The fake engine writes audio bytes into its last argument, the
	// temporary .part path, and exits cleanly.
	engine := writeFakeEngine(t, "#!/bin/sh\nfor last; do :; done\nprintf 'mp3-bytes' > \"$last\"\n")
	tr := NewTranscoder(engine, 0, testLogger())
	task := newTestTask(t)

	if err := tr.Convert(context.Background(), task); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(task.OutputPath)
	if err != nil {
		t.Fatalf("Expected output file at %s: %v", task.OutputPath, err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("Expected engine output in final file, got %q", data)
	}

	if _, err := os.Stat(task.OutputPath + PartSuffix); !os.IsNotExist(err) {
		t.Error("Expected temporary .part file to be renamed away")
	}
}

func TestTranscoder_Convert_EngineFailure(t *testing.T) {
	// The fake engine leaves a partial file behind and fails with
	// diagnostics on stderr.
	script := "#!/bin/sh\n" +
		"for last; do :; done\n" +
		"printf 'junk' > \"$last\"\n" +
		"echo 'Error: invalid data found when processing input' >&2\n" +
		"exit 1\n"
	engine := writeFakeEngine(t, script)
	tr := NewTranscoder(engine, 0, testLogger())
	task := newTestTask(t)

	err := tr.Convert(context.Background(), task)
	if err == nil {
		t.Fatal("Expected error for failing engine, got nil")
	}

	var trErr *TranscodeError
	if !errors.As(err, &trErr) {
		t.Fatalf("Expected TranscodeError, got %T", err)
	}

	if !strings.Contains(trErr.Stderr, "invalid data") {
		t.Errorf("Expected engine diagnostics in error, got %q", trErr.Stderr)
	}

	if _, err := os.Stat(task.OutputPath + PartSuffix); !os.IsNotExist(err) {
		t.Error("Expected partial output to be removed after failure")
	}

	if _, err := os.Stat(task.OutputPath); !os.IsNotExist(err) {
		t.Error("Expected no file at the final output path after failure")
	}
}

func TestTranscoder_Convert_Timeout(t *testing.T) {
	engine := writeFakeEngine(t, "#!/bin/sh\nexec sleep 5\n")
	tr := NewTranscoder(engine, 100*time.Millisecond, testLogger())
	task := newTestTask(t)

	err := tr.Convert(context.Background(), task)
	if err == nil {
		t.Fatal("Expected error for timed out engine, got nil")
	}

	var trErr *TranscodeError
	if !errors.As(err, &trErr) {
		t.Fatalf("Expected TranscodeError, got %T", err)
	}

	if !strings.Contains(trErr.Err.Error(), "timed out") {
		t.Errorf("Expected timeout in error, got: %v", trErr.Err)
	}
}

func TestStderrTail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"one line\n", "one line"},
		{"a\n\nb\n", "a; b"},
		{"1\n2\n3\n4\n5\n6\n", "3; 4; 5; 6"},
	}

	for _, test := range tests {
		result := stderrTail(test.input)
		if result != test.expected {
			t.Errorf("stderrTail(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}
