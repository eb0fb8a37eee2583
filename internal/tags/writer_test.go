package tags

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"

	"github.com/soundconv/flac2mp3/internal/model"
)

// writeDummyMP3 creates a file with a bare MPEG frame header so the tag
// library has an audio payload to preserve across saves
func writeDummyMP3(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track.mp3")
	payload := append([]byte{0xFF, 0xFB, 0x90, 0x00}, bytes.Repeat([]byte{0x00}, 64)...)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatalf("Failed to write dummy MP3: %v", err)
	}
	return path
}

func TestWriter_Apply(t *testing.T) {
	path := writeDummyMP3(t)
	art := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0xAA, 0xBB}

	record := model.NewMetadataRecord()
	record.Set("title", "So What")
	record.Set("artist", "Miles Davis")
	record.Set("tracknumber", "1")
	record.Set("comment", "1959 session")
	record.Set("lyrics", "Instrumental")
	record.Set("website", "https://example.org/miles")
	record.Set("mood", "Calm") // no mapping, must be skipped
	record.Artwork = &model.Artwork{
		MIMEType:    "image/jpeg",
		Description: "Front cover",
		Data:        art,
	}

	writer := NewWriter(defaultMap(t), testLogger())
	if err := writer.Apply(path, record); err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	verify, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen tagged file: %v", err)
	}
	defer verify.Close()

	textFrames := map[string]string{
		"TIT2": "So What",
		"TPE1": "Miles Davis",
		"TRCK": "1",
	}
	for frameID, want := range textFrames {
		got := verify.GetTextFrame(frameID).Text
		if got != want {
			t.Errorf("frame %s = %q, expected %q", frameID, got, want)
		}
	}

	comments := verify.GetFrames("COMM")
	if len(comments) != 1 {
		t.Fatalf("expected 1 COMM frame, got %d", len(comments))
	}
	comment, ok := comments[0].(id3v2.CommentFrame)
	if !ok {
		t.Fatalf("COMM frame type = %T", comments[0])
	}
	if comment.Text != "1959 session" {
		t.Errorf("COMM text = %q, expected '1959 session'", comment.Text)
	}
	if comment.Language != frameLanguage {
		t.Errorf("COMM language = %q, expected %q", comment.Language, frameLanguage)
	}

	lyricsFrames := verify.GetFrames("USLT")
	if len(lyricsFrames) != 1 {
		t.Fatalf("expected 1 USLT frame, got %d", len(lyricsFrames))
	}
	uslt, ok := lyricsFrames[0].(id3v2.UnsynchronisedLyricsFrame)
	if !ok {
		t.Fatalf("USLT frame type = %T", lyricsFrames[0])
	}
	if uslt.Lyrics != "Instrumental" {
		t.Errorf("USLT lyrics = %q, expected 'Instrumental'", uslt.Lyrics)
	}

	// URL-mapped fields travel as TXXX keyed by the source field
	userFrames := verify.GetFrames("TXXX")
	if len(userFrames) != 1 {
		t.Fatalf("expected 1 TXXX frame, got %d", len(userFrames))
	}
	udt, ok := userFrames[0].(id3v2.UserDefinedTextFrame)
	if !ok {
		t.Fatalf("TXXX frame type = %T", userFrames[0])
	}
	if udt.Description != "website" || udt.Value != "https://example.org/miles" {
		t.Errorf("TXXX = %q/%q, expected website/https://example.org/miles", udt.Description, udt.Value)
	}

	pictures := verify.GetFrames("APIC")
	if len(pictures) != 1 {
		t.Fatalf("expected 1 APIC frame, got %d", len(pictures))
	}
	apic, ok := pictures[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatalf("APIC frame type = %T", pictures[0])
	}
	if apic.MimeType != "image/jpeg" {
		t.Errorf("APIC mime = %s, expected image/jpeg", apic.MimeType)
	}
	if apic.PictureType != id3v2.PTFrontCover {
		t.Errorf("APIC picture type = %d, expected front cover", apic.PictureType)
	}
	if !bytes.Equal(apic.Picture, art) {
		t.Error("APIC data does not match the record artwork")
	}

	// title, artist, tracknumber, COMM, USLT, TXXX, APIC; 'mood' skipped
	if verify.Count() != 7 {
		t.Errorf("frame count = %d, expected 7", verify.Count())
	}
}

func TestWriter_Apply_EmptyRecord(t *testing.T) {
	path := writeDummyMP3(t)

	writer := NewWriter(defaultMap(t), testLogger())
	if err := writer.Apply(path, model.NewMetadataRecord()); err != nil {
		t.Fatalf("Apply() with empty record returned error: %v", err)
	}

	verify, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen file: %v", err)
	}
	defer verify.Close()

	if verify.Count() != 0 {
		t.Errorf("frame count = %d, expected 0", verify.Count())
	}
}

func TestWriter_Apply_MissingOutput(t *testing.T) {
	writer := NewWriter(defaultMap(t), testLogger())

	record := model.NewMetadataRecord()
	record.Set("title", "Ghost")

	err := writer.Apply(filepath.Join(t.TempDir(), "missing.mp3"), record)
	if err == nil {
		t.Fatal("Apply() expected error for missing output file")
	}

	var writeErr *TagWriteError
	if !errors.As(err, &writeErr) {
		t.Fatalf("Apply() error type = %T, expected *TagWriteError", err)
	}
}

func TestWriter_Apply_PreservesAudio(t *testing.T) {
	path := writeDummyMP3(t)
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read dummy MP3: %v", err)
	}

	record := model.NewMetadataRecord()
	record.Set("title", "Audio Intact")

	writer := NewWriter(defaultMap(t), testLogger())
	if err := writer.Apply(path, record); err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	tagged, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read tagged file: %v", err)
	}

	if !bytes.HasSuffix(tagged, original) {
		t.Error("audio payload must survive tagging unchanged")
	}
}
