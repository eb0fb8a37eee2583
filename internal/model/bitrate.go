package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Bitrate is a target MP3 bitrate in kbit/s. Only the constant-bitrate
// presets offered by the UI are valid.
type Bitrate int

const (
	Bitrate128 Bitrate = 128
	Bitrate192 Bitrate = 192
	Bitrate256 Bitrate = 256
	Bitrate320 Bitrate = 320

	// DefaultBitrate is used when no preference is stored
	DefaultBitrate = Bitrate192
)

// Bitrates returns the supported presets in ascending order
func Bitrates() []Bitrate {
	return []Bitrate{Bitrate128, Bitrate192, Bitrate256, Bitrate320}
}

// BitrateOptions returns the presets formatted for a select widget
func BitrateOptions() []string {
	options := make([]string, 0, len(Bitrates()))
	for _, b := range Bitrates() {
		options = append(options, b.String())
	}
	return options
}

// Valid returns true if the bitrate is one of the supported presets
func (b Bitrate) Valid() bool {
	switch b {
	case Bitrate128, Bitrate192, Bitrate256, Bitrate320:
		return true
	}
	return false
}

// String returns the encoder-style form, e.g. "192k"
func (b Bitrate) String() string {
	return strconv.Itoa(int(b)) + "k"
}

// ParseBitrate parses a preset from its string form ("192k" or "192").
// Values outside the preset list are rejected.
func ParseBitrate(s string) (Bitrate, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "k")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid bitrate %q", s)
	}

	b := Bitrate(n)
	if !b.Valid() {
		return 0, fmt.Errorf("unsupported bitrate %q", s)
	}
	return b, nil
}
