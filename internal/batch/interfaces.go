package batch

import (
	"context"

	"github.com/soundconv/flac2mp3/internal/model"
)

// Extractor defines the interface for reading metadata out of a source file.
type Extractor interface {
	Extract(path string) (*model.MetadataRecord, error)
}

// Converter defines the interface for transcoding one task's audio.
type Converter interface {
	Convert(ctx context.Context, task *model.ConversionTask) error
}

// Tagger defines the interface for stamping metadata onto a converted file.
type Tagger interface {
	Apply(outputPath string, record *model.MetadataRecord) error
}

// Orchestrator defines the interface for the batch runner consumed by the UI.
type Orchestrator interface {
	SetStatusCallback(func(*model.ConversionTask))
	SetOutputDirectory(dir string)
	SetRemoveOriginals(remove bool)
	Run(ctx context.Context, dir string, bitrate model.Bitrate, progress ProgressFunc) (*model.BatchSummary, error)
	Cancel()
}
