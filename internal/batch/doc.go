package batch

// Package batch implements the sequential conversion pipeline over a folder
// of FLAC files. A Runner walks the folder in filename order and moves each
// file through metadata extraction, transcoding and tag stamping before
// touching the next one. Failures are recorded per file without stopping
// the run, and cancellation takes effect between files.
