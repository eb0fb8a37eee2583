package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the batch runner and renders
// folder selection, conversion progress, the activity log, and settings.
