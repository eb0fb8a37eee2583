package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Window chrome
const (
	AppTitle = "Sound Converter"
)

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconDone     = "✓"
	IconFailed   = "✗"
)

// Text fragments
const (
	ProgressCountFormat = "%d / %d"
	StatusIdle          = "Choose a folder and press Start"
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 360
)
