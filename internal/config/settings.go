package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/soundconv/flac2mp3/internal/model"
	"github.com/soundconv/flac2mp3/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyBitrate         = "target_bitrate"
	KeyOutputDir       = "output_directory"
	KeyLastFolder      = "last_source_folder"
	KeyRemoveOriginals = "remove_originals"
	KeyEnginePath      = "ffmpeg_path"
	KeyTimeoutMinutes  = "conversion_timeout_minutes"
)

// Default values
const (
	DefaultEnginePath     = "ffmpeg"
	DefaultTimeoutMinutes = 10

	MinTimeoutMinutes = 1
	MaxTimeoutMinutes = 120
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetBitrate returns the configured target bitrate
func (s *Settings) GetBitrate() model.Bitrate {
	value := model.Bitrate(s.app.Preferences().Int(KeyBitrate))
	if !value.Valid() {
		s.SetBitrate(model.DefaultBitrate)
		return model.DefaultBitrate
	}
	return value
}

// SetBitrate sets the target bitrate. Values outside the preset list are
// replaced with the default.
func (s *Settings) SetBitrate(bitrate model.Bitrate) {
	if !bitrate.Valid() {
		bitrate = model.DefaultBitrate
	}
	s.app.Preferences().SetInt(KeyBitrate, int(bitrate))
}

// GetOutputDirectory returns the configured output directory. Empty means
// converted files are written alongside their sources.
func (s *Settings) GetOutputDirectory() string {
	return s.app.Preferences().String(KeyOutputDir)
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetLastSourceFolder returns the most recently used source folder
func (s *Settings) GetLastSourceFolder() string {
	dir := s.app.Preferences().String(KeyLastFolder)
	if dir == "" {
		// Use the system music directory as a starting point
		defaultDir, err := platform.GetHomeMusicDir()
		if err != nil {
			defaultDir = "/tmp"
		}
		s.SetLastSourceFolder(defaultDir)
		return defaultDir
	}
	return dir
}

// SetLastSourceFolder remembers the source folder for the next session
func (s *Settings) SetLastSourceFolder(dir string) {
	s.app.Preferences().SetString(KeyLastFolder, dir)
}

// GetRemoveOriginals returns whether sources are deleted after conversion
func (s *Settings) GetRemoveOriginals() bool {
	return s.app.Preferences().BoolWithFallback(KeyRemoveOriginals, false)
}

// SetRemoveOriginals sets whether sources are deleted after conversion
func (s *Settings) SetRemoveOriginals(remove bool) {
	s.app.Preferences().SetBool(KeyRemoveOriginals, remove)
}

// GetEnginePath returns the configured ffmpeg binary name or path
func (s *Settings) GetEnginePath() string {
	path := s.app.Preferences().String(KeyEnginePath)
	if path == "" {
		s.SetEnginePath(DefaultEnginePath)
		return DefaultEnginePath
	}
	return path
}

// SetEnginePath sets the ffmpeg binary name or path
func (s *Settings) SetEnginePath(path string) {
	if path == "" {
		path = DefaultEnginePath
	}
	s.app.Preferences().SetString(KeyEnginePath, path)
}

// GetTimeoutMinutes returns the per-file conversion timeout in minutes
func (s *Settings) GetTimeoutMinutes() int {
	value := s.app.Preferences().Int(KeyTimeoutMinutes)
	if value <= 0 {
		s.SetTimeoutMinutes(DefaultTimeoutMinutes)
		return DefaultTimeoutMinutes
	}
	return value
}

// SetTimeoutMinutes sets the per-file conversion timeout in minutes
func (s *Settings) SetTimeoutMinutes(minutes int) {
	if minutes < MinTimeoutMinutes {
		minutes = MinTimeoutMinutes
	}
	if minutes > MaxTimeoutMinutes {
		minutes = MaxTimeoutMinutes
	}
	s.app.Preferences().SetInt(KeyTimeoutMinutes, minutes)
}

// GetConversionTimeout returns the per-file timeout as a duration
func (s *Settings) GetConversionTimeout() time.Duration {
	return time.Duration(s.GetTimeoutMinutes()) * time.Minute
}
