package tagmap

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Default resource name reported in errors for the embedded map
const embeddedName = "embedded tag map"

//go:embed tagmap.json
var embeddedResource []byte

// Entry maps one source comment field to a target ID3 frame. Description is
// an optional human-readable label carried from the resource file.
type Entry struct {
	SourceField string `json:"flac_field"`
	TargetFrame string `json:"id3_frame"`
	Description string `json:"description,omitempty"`
}

// Map is the validated field-to-frame table used by the translator and the
// tag writer. It is immutable after load; lookups are case-insensitive.
type Map struct {
	entries []Entry
	byField map[string]Entry
}

// ConfigError reports a missing, unreadable, or malformed tag map resource
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tag map %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads a tag map resource from disk and validates it
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	m, err := parse(data)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return m, nil
}

// Default returns the map built into the binary, so the application works
// without any external configuration files
func Default() (*Map, error) {
	m, err := parse(embeddedResource)
	if err != nil {
		return nil, &ConfigError{Path: embeddedName, Err: err}
	}
	return m, nil
}

// parse decodes the JSON entry list and enforces the map invariants:
// non-empty lowercased source fields, unique per map, each mapped to a
// syntactically valid frame identifier.
func parse(data []byte) (*Map, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errors.New("resource contains no mappings")
	}

	m := &Map{
		entries: make([]Entry, 0, len(entries)),
		byField: make(map[string]Entry, len(entries)),
	}

	for i, entry := range entries {
		field := strings.ToLower(strings.TrimSpace(entry.SourceField))
		frame := strings.TrimSpace(entry.TargetFrame)

		if field == "" {
			return nil, fmt.Errorf("entry %d: empty source field", i)
		}
		if !ValidFrameID(frame) {
			return nil, fmt.Errorf("entry %d: invalid frame id %q for field %q", i, entry.TargetFrame, field)
		}
		if _, exists := m.byField[field]; exists {
			return nil, fmt.Errorf("entry %d: duplicate source field %q", i, field)
		}

		entry.SourceField = field
		entry.TargetFrame = frame
		m.byField[field] = entry
		m.entries = append(m.entries, entry)
	}

	return m, nil
}

// ValidFrameID reports whether id has the shape of an ID3v2 frame
// identifier: exactly four capital letters or digits
func ValidFrameID(id string) bool {
	if len(id) != 4 {
		return false
	}
	for _, c := range id {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// TargetFrame returns the frame mapped to a source field
func (m *Map) TargetFrame(sourceField string) (string, bool) {
	entry, ok := m.byField[strings.ToLower(sourceField)]
	if !ok {
		return "", false
	}
	return entry.TargetFrame, true
}

// HasSource returns true if a source field is present in the map
func (m *Map) HasSource(sourceField string) bool {
	_, ok := m.byField[strings.ToLower(sourceField)]
	return ok
}

// Describe returns the description configured for a source field
func (m *Map) Describe(sourceField string) (string, bool) {
	entry, ok := m.byField[strings.ToLower(sourceField)]
	if !ok {
		return "", false
	}
	return entry.Description, true
}

// SourceFields returns the mapped source fields in sorted order
func (m *Map) SourceFields() []string {
	fields := make([]string, 0, len(m.byField))
	for field := range m.byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Entries returns a copy of the entry list in resource order
func (m *Map) Entries() []Entry {
	entries := make([]Entry, len(m.entries))
	copy(entries, m.entries)
	return entries
}

// Len returns the number of mappings
func (m *Map) Len() int {
	return len(m.byField)
}
