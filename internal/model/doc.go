package model

// Package model defines domain data structures used across the app:
// conversion tasks, metadata records, bitrate presets, status enums, and
// batch result aggregation. Structures are designed for direct binding in
// the UI and explicit state transitions.
