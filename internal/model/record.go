package model

// MetadataRecord is the set of tag values carried from a source file to its
// converted output. Keys are lowercased source field names; only fields
// present in the active tag map ever appear here.
type MetadataRecord struct {
	Fields  map[string]string
	Artwork *Artwork
}

// Artwork is an embedded cover image extracted from a source file
type Artwork struct {
	MIMEType    string
	Description string
	Data        []byte
}

// NewMetadataRecord returns an empty record ready for field assignment
func NewMetadataRecord() *MetadataRecord {
	return &MetadataRecord{
		Fields: make(map[string]string),
	}
}

// Set stores a field value, overwriting any previous value
func (mr *MetadataRecord) Set(field, value string) {
	mr.Fields[field] = value
}

// Get returns a field value and whether it is present
func (mr *MetadataRecord) Get(field string) (string, bool) {
	value, ok := mr.Fields[field]
	return value, ok
}

// Len returns the number of text fields in the record
func (mr *MetadataRecord) Len() int {
	return len(mr.Fields)
}

// HasArtwork returns true if the record carries an embedded image
func (mr *MetadataRecord) HasArtwork() bool {
	return mr.Artwork != nil && len(mr.Artwork.Data) > 0
}

// IsEmpty returns true when there is nothing to write: no fields and no art
func (mr *MetadataRecord) IsEmpty() bool {
	return len(mr.Fields) == 0 && !mr.HasArtwork()
}
