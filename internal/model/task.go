package model

import (
	"path/filepath"
	"strings"
	"time"
)

// ConversionTask represents one source file moving through the
// extract/convert/tag pipeline.
type ConversionTask struct {
	ID         string
	SourcePath string
	OutputPath string
	Bitrate    Bitrate
	Status     TaskStatus
	LastError  string    // last error message if any
	StartedAt  time.Time // when processing started
	FinishedAt time.Time // when processing finished
}

// GetDisplayName returns the source filename without its extension,
// falling back to the full path when it has no base name
func (ct *ConversionTask) GetDisplayName() string {
	base := filepath.Base(ct.SourcePath)
	if base == "." || base == string(filepath.Separator) {
		return ct.SourcePath
	}

	ext := filepath.Ext(base)
	if ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

// Elapsed returns how long the task ran, or time since start for a task
// that has not finished yet
func (ct *ConversionTask) Elapsed() time.Duration {
	if ct.StartedAt.IsZero() {
		return 0
	}
	if ct.FinishedAt.IsZero() {
		return time.Since(ct.StartedAt)
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}
