package model

import "testing"

func TestBitrate_Valid(t *testing.T) {
	tests := []struct {
		bitrate  Bitrate
		expected bool
	}{
		{Bitrate128, true},
		{Bitrate192, true},
		{Bitrate256, true},
		{Bitrate320, true},
		{Bitrate(0), false},
		{Bitrate(64), false},
		{Bitrate(193), false},
		{Bitrate(-192), false},
	}

	for _, test := range tests {
		result := test.bitrate.Valid()
		if result != test.expected {
			t.Errorf("Bitrate(%d).Valid() = %v, expected %v", test.bitrate, result, test.expected)
		}
	}
}

func TestBitrate_String(t *testing.T) {
	tests := []struct {
		bitrate  Bitrate
		expected string
	}{
		{Bitrate128, "128k"},
		{Bitrate192, "192k"},
		{Bitrate256, "256k"},
		{Bitrate320, "320k"},
	}

	for _, test := range tests {
		result := test.bitrate.String()
		if result != test.expected {
			t.Errorf("Bitrate(%d).String() = %s, expected %s", test.bitrate, result, test.expected)
		}
	}
}

func TestParseBitrate(t *testing.T) {
	tests := []struct {
		input    string
		expected Bitrate
		wantErr  bool
	}{
		{"192k", Bitrate192, false},
		{"192", Bitrate192, false},
		{" 320k ", Bitrate320, false},
		{"128k", Bitrate128, false},
		{"", 0, true},
		{"fast", 0, true},
		{"200k", 0, true},
		{"-128k", 0, true},
	}

	for _, test := range tests {
		result, err := ParseBitrate(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseBitrate(%q) expected error, got %v", test.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBitrate(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseBitrate(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestBitrateOptions(t *testing.T) {
	options := BitrateOptions()
	expected := []string{"128k", "192k", "256k", "320k"}

	if len(options) != len(expected) {
		t.Fatalf("BitrateOptions() returned %d options, expected %d", len(options), len(expected))
	}

	for i, option := range options {
		if option != expected[i] {
			t.Errorf("BitrateOptions()[%d] = %s, expected %s", i, option, expected[i])
		}
	}
}

func TestDefaultBitrate_IsValid(t *testing.T) {
	if !DefaultBitrate.Valid() {
		t.Errorf("DefaultBitrate %v must be a supported preset", DefaultBitrate)
	}
}
