package convert

import (
	"context"

	"github.com/soundconv/flac2mp3/internal/model"
)

// Engine defines the interface for the transcoding service.
type Engine interface {
	Available() error
	Convert(ctx context.Context, task *model.ConversionTask) error
}
