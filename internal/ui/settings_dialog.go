package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/soundconv/flac2mp3/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	// UI components
	outputDirEntry  *widget.Entry
	enginePathEntry *widget.Entry
	timeoutEntry    *widget.Entry
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Output directory selection
	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Leave empty to write next to the sources")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	// FFmpeg binary location
	sd.enginePathEntry = widget.NewEntry()
	sd.enginePathEntry.SetPlaceHolder(config.DefaultEnginePath)

	// Per-file timeout
	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder("1-120")

	// Create form
	form := container.NewVBox(
		widget.NewLabel("Conversion Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Output Directory:"),
		outputDirRow,

		widget.NewLabel("FFmpeg Path:"),
		sd.enginePathEntry,

		widget.NewLabel("Per-file Timeout (minutes):"),
		sd.timeoutEntry,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.settings.GetOutputDirectory())
	sd.enginePathEntry.SetText(sd.settings.GetEnginePath())
	sd.timeoutEntry.SetText(strconv.Itoa(sd.settings.GetTimeoutMinutes()))
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Empty means alongside the sources, so it is saved as-is
	sd.settings.SetOutputDirectory(sd.outputDirEntry.Text)

	sd.settings.SetEnginePath(sd.enginePathEntry.Text)

	// Save timeout, ignoring unparsable input
	if timeoutStr := sd.timeoutEntry.Text; timeoutStr != "" {
		if minutes, err := strconv.Atoi(timeoutStr); err == nil {
			sd.settings.SetTimeoutMinutes(minutes)
		}
	}

	dialog.ShowInformation("Settings", "Settings saved successfully!", sd.window)
}
