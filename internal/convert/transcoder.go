package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/model"
)

// Engine and argument constants
const (
	// DefaultBinary is the transcoding engine looked up on PATH
	DefaultBinary = "ffmpeg"

	// DefaultTimeout bounds a single file conversion
	DefaultTimeout = 10 * time.Minute

	// PartSuffix marks in-progress output files
	PartSuffix = ".part"

	// AudioCodec is the MP3 encoder
	AudioCodec = "libmp3lame"

	// OutputFormat pins the muxer; the temp suffix hides the real extension
	OutputFormat = "mp3"

	// Lines of engine output carried in a TranscodeError
	stderrTailLines = 4
)

// TranscodeError reports a failed or interrupted engine run. Stderr holds
// the tail of the engine's diagnostics when any were produced.
type TranscodeError struct {
	Path   string
	Stderr string
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("transcode %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("transcode %s: %v: %s", e.Path, e.Err, e.Stderr)
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}

// Transcoder converts one audio file at a time by driving the external
// engine as a subprocess
type Transcoder struct {
	binary  string
	timeout time.Duration
	log     *logrus.Logger
}

// NewTranscoder creates a transcoder. An empty binary and a zero timeout
// fall back to the defaults.
func NewTranscoder(binary string, timeout time.Duration, log *logrus.Logger) *Transcoder {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Transcoder{binary: binary, timeout: timeout, log: log}
}

// Available reports whether the engine binary can be found. Used as a
// pre-flight check before a batch is started.
func (t *Transcoder) Available() error {
	if _, err := exec.LookPath(t.binary); err != nil {
		return fmt.Errorf("transcoding engine not found: %w", err)
	}
	return nil
}

// Convert transcodes the task's source into its output path. The audio is
// written to a temporary .part file and renamed over the final path only
// after the engine exits cleanly, so failures never leave a partial file
// at the output path. Source metadata is stripped here; the tag writer
// applies its own rules afterwards.
func (t *Transcoder) Convert(ctx context.Context, task *model.ConversionTask) error {
	if _, err := exec.LookPath(t.binary); err != nil {
		return &TranscodeError{Path: task.SourcePath, Err: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	partPath := task.OutputPath + PartSuffix
	args := BuildEngineArgs(task.SourcePath, partPath, task.Bitrate)

	t.log.WithFields(logrus.Fields{
		"source":  task.SourcePath,
		"bitrate": task.Bitrate.String(),
	}).Debug("Starting transcode")

	cmd := exec.CommandContext(runCtx, t.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(partPath)
		if runCtx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("engine timed out after %s", t.timeout)
		}
		return &TranscodeError{
			Path:   task.SourcePath,
			Stderr: stderrTail(stderr.String()),
			Err:    err,
		}
	}

	if err := os.Rename(partPath, task.OutputPath); err != nil {
		os.Remove(partPath)
		return &TranscodeError{Path: task.SourcePath, Err: err}
	}

	return nil
}

// BuildEngineArgs builds the engine command line for one conversion.
// Metadata mapping is disabled with -map_metadata -1 and embedded pictures
// are dropped with -vn; tagging is a separate step.
func BuildEngineArgs(sourcePath, outputPath string, bitrate model.Bitrate) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", sourcePath,
		"-y",
		"-map_metadata", "-1",
		"-vn",
		"-c:a", AudioCodec,
		"-b:a", bitrate.String(),
		"-f", OutputFormat,
		outputPath,
	}
}

// stderrTail returns the last few non-empty lines of engine output on a
// single line
func stderrTail(output string) string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, "; ")
}
