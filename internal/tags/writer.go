package tags

import (
	"sort"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/model"
	"github.com/soundconv/flac2mp3/internal/tagmap"
)

// Frame language for COMM and USLT frames (ISO-639-2)
const frameLanguage = "eng"

// Writer stamps mapped ID3v2.4 frames onto converted MP3 files
type Writer struct {
	tagMap *tagmap.Map
	log    *logrus.Logger
}

// NewWriter creates a writer bound to a tag map
func NewWriter(m *tagmap.Map, log *logrus.Logger) *Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Writer{tagMap: m, log: log}
}

// Apply writes the record's fields to the file at outputPath as ID3v2.4
// frames, plus an attached front cover picture when the record carries
// artwork. Fields without a mapping are skipped. The audio stream is left
// untouched even when the save fails.
func (w *Writer) Apply(outputPath string, record *model.MetadataRecord) error {
	id3, err := id3v2.Open(outputPath, id3v2.Options{Parse: true})
	if err != nil {
		return &TagWriteError{Path: outputPath, Err: err}
	}
	defer id3.Close()

	id3.SetVersion(4)
	id3.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Sorted field order keeps the frame layout deterministic
	fields := make([]string, 0, record.Len())
	for field := range record.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		frameID, ok := w.tagMap.TargetFrame(field)
		if !ok {
			w.log.WithField("field", field).Debug("Record field has no frame mapping, skipping")
			continue
		}
		w.addFrame(id3, frameID, field, record.Fields[field])
	}

	if record.HasArtwork() {
		mime := record.Artwork.MIMEType
		if mime == "" {
			mime = "image/jpeg"
		}
		id3.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    mime,
			PictureType: id3v2.PTFrontCover,
			Description: record.Artwork.Description,
			Picture:     record.Artwork.Data,
		})
	}

	if err := id3.Save(); err != nil {
		return &TagWriteError{Path: outputPath, Err: err}
	}
	return nil
}

// addFrame routes a value to the right frame shape. COMM and USLT need
// language-qualified frames, and URL frames cannot carry a text encoding
// byte, so those values travel as TXXX keyed by the source field.
func (w *Writer) addFrame(id3 *id3v2.Tag, frameID, field, value string) {
	switch {
	case frameID == "COMM":
		id3.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: frameLanguage,
			Text:     value,
		})
	case frameID == "USLT":
		id3.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: frameLanguage,
			Lyrics:   value,
		})
	case strings.HasPrefix(frameID, "W"):
		id3.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: field,
			Value:       value,
		})
	default:
		id3.AddTextFrame(frameID, id3v2.EncodingUTF8, value)
	}
}
