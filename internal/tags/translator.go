package tags

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/model"
	"github.com/soundconv/flac2mp3/internal/tagmap"
)

// Translator extracts the mapped subset of a FLAC file's metadata
type Translator struct {
	tagMap *tagmap.Map
	log    *logrus.Logger
}

// NewTranslator creates a translator bound to a tag map
func NewTranslator(m *tagmap.Map, log *logrus.Logger) *Translator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Translator{tagMap: m, log: log}
}

// Extract reads the source file and returns the intersection of its Vorbis
// comments with the tag map's source fields, plus the first embedded
// picture when one exists. The source is opened read-only and never
// modified. Missing fields and missing artwork are not errors.
func (tr *Translator) Extract(path string) (*model.MetadataRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableSourceError{Path: path, Err: err}
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return nil, &UnreadableSourceError{Path: path, Err: err}
	}

	if meta.FileType() != tag.FLAC {
		return nil, &UnreadableSourceError{
			Path: path,
			Err:  fmt.Errorf("not a FLAC stream (detected %s)", meta.FileType()),
		}
	}

	record := model.NewMetadataRecord()

	for key, raw := range meta.Raw() {
		field := strings.ToLower(key)
		if !tr.tagMap.HasSource(field) {
			tr.log.WithField("field", field).Debug("No ID3 frame mapping for source field, dropping")
			continue
		}

		value := rawValueString(raw)
		if value == "" {
			continue
		}
		record.Set(field, value)
	}

	if pic := meta.Picture(); pic != nil && len(pic.Data) > 0 {
		record.Artwork = &model.Artwork{
			MIMEType:    pictureMIME(pic),
			Description: pic.Description,
			Data:        pic.Data,
		}
	}

	return record, nil
}

// rawValueString renders a raw comment value as text. Vorbis comments are
// plain strings; anything else is formatted generically.
func rawValueString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case []string:
		return strings.TrimSpace(strings.Join(v, "; "))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// pictureMIME returns the picture's declared MIME type, sniffing the image
// magic bytes when the declaration is absent
func pictureMIME(pic *tag.Picture) string {
	if pic.MIMEType != "" {
		return pic.MIMEType
	}
	return detectImageMIME(pic.Data)
}

// detectImageMIME identifies common cover art formats by signature,
// defaulting to JPEG
func detectImageMIME(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
