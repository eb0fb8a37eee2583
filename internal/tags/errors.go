package tags

import "fmt"

// UnreadableSourceError reports a source file that could not be opened or
// is not a valid FLAC stream. The file itself is never modified.
type UnreadableSourceError struct {
	Path string
	Err  error
}

func (e *UnreadableSourceError) Error() string {
	return fmt.Sprintf("read source %s: %v", e.Path, e.Err)
}

func (e *UnreadableSourceError) Unwrap() error {
	return e.Err
}

// TagWriteError reports a failure writing frames to an output file. The
// transcoded audio stays on disk; only the metadata is incomplete.
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("write tags %s: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error {
	return e.Err
}
