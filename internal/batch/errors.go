package batch

import "fmt"

// DirectoryError reports a source directory that could not be enumerated.
// It aborts the run before any file is processed.
type DirectoryError struct {
	Path string
	Err  error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("read directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryError) Unwrap() error {
	return e.Err
}
