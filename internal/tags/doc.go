package tags

// Package tags moves metadata between formats: the Translator reads Vorbis
// comments and cover art out of FLAC sources, the Writer stamps mapped ID3v2
// frames onto converted MP3 files. The tag map decides which fields travel;
// unmapped fields are dropped, never invented.
