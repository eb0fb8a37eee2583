package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/soundconv/flac2mp3/internal/batch"
	"github.com/soundconv/flac2mp3/internal/config"
	"github.com/soundconv/flac2mp3/internal/convert"
	"github.com/soundconv/flac2mp3/internal/model"
	"github.com/soundconv/flac2mp3/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	folderEntry   *widget.Entry
	bitrateSelect *widget.Select
	removeCheck   *widget.Check
	startBtn      *widget.Button
	cancelBtn     *widget.Button
	openFolderBtn *widget.Button
	progressBar   *widget.ProgressBar
	progressLabel *widget.Label
	statusLabel   *widget.Label
	activityLog   binding.StringList
	logList       *widget.List

	runner   batch.Orchestrator
	engine   convert.Engine
	settings *config.Settings

	running    bool
	lastRunDir string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, runner batch.Orchestrator, engine convert.Engine) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	ui := &RootUI{
		window:      window,
		runner:      runner,
		engine:      engine,
		settings:    settings,
		activityLog: binding.NewStringList(),
	}

	window.SetTitle(AppTitle)

	// Show the in-flight file while a batch runs
	ui.runner.SetStatusCallback(ui.onTaskStatus)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Source folder row
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetPlaceHolder("Folder with FLAC files")
	ui.folderEntry.SetText(ui.settings.GetLastSourceFolder())
	ui.folderEntry.OnSubmitted = func(string) {
		ui.onStartClick()
	}

	browseBtn := widget.NewButton("Browse", ui.onBrowseFolder)
	folderRow := container.NewBorder(nil, nil, nil, browseBtn, ui.folderEntry)

	// Bitrate selection
	ui.bitrateSelect = widget.NewSelect(model.BitrateOptions(), nil)
	ui.bitrateSelect.SetSelected(ui.settings.GetBitrate().String())

	// Delete originals toggle
	ui.removeCheck = widget.NewCheck("Delete original files after conversion", nil)
	ui.removeCheck.SetChecked(ui.settings.GetRemoveOriginals())

	// Settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	optionsRow := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Bitrate:"), ui.bitrateSelect),
		settingsBtn,
		ui.removeCheck,
	)

	// Control buttons
	ui.startBtn = widget.NewButton("Start Conversion", ui.onStartClick)
	ui.startBtn.Importance = widget.HighImportance
	ui.cancelBtn = widget.NewButton("Cancel", ui.onCancelClick)
	ui.cancelBtn.Disable()
	ui.openFolderBtn = widget.NewButton(IconFolder+" Open Folder", ui.onOpenFolder)
	ui.openFolderBtn.Disable()

	buttonsRow := container.NewHBox(ui.startBtn, ui.cancelBtn, ui.openFolderBtn)

	// Progress display
	ui.progressBar = widget.NewProgressBar()
	ui.progressLabel = widget.NewLabel(fmt.Sprintf(ProgressCountFormat, 0, 0))
	ui.statusLabel = widget.NewLabel(StatusIdle)
	progressRow := container.NewBorder(nil, nil, nil, ui.progressLabel, ui.progressBar)

	topPanel := container.NewVBox(
		folderRow,
		optionsRow,
		buttonsRow,
		progressRow,
		ui.statusLabel,
		widget.NewSeparator(),
	)

	// Activity log fills the remaining space
	ui.logList = widget.NewListWithData(ui.activityLog,
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			str, ok := item.(binding.String)
			if !ok {
				return
			}
			text, err := str.Get()
			if err != nil {
				return
			}
			obj.(*widget.Label).SetText(text)
		},
	)

	content := container.NewBorder(
		topPanel,   // top
		nil,        // bottom
		nil,        // left
		nil,        // right
		ui.logList, // center
	)

	ui.window.SetContent(content)

	log.Printf("UI setup completed successfully")
}

// onBrowseFolder opens the system folder picker
func (ui *RootUI) onBrowseFolder() {
	dlg := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.folderEntry.SetText(uri.Path())
	}, ui.window)
	dlg.Resize(fyne.NewSize(600, 450))
	dlg.Show()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window).Show()
}

// onStartClick validates the inputs and launches a batch run
func (ui *RootUI) onStartClick() {
	if ui.running {
		return
	}

	folder := strings.TrimSpace(ui.folderEntry.Text)
	if folder == "" {
		widget.ShowPopUp(widget.NewLabel("Please choose a folder first"), ui.window.Canvas())
		return
	}

	// Refuse to start without the transcoding engine
	if err := ui.engine.Available(); err != nil {
		log.Printf("Engine pre-flight failed: %v", err)
		dialog.ShowError(fmt.Errorf("ffmpeg was not found\n\nInstall ffmpeg and make sure it is on your PATH, or set its location in Settings"), ui.window)
		return
	}

	bitrate, err := model.ParseBitrate(ui.bitrateSelect.Selected)
	if err != nil {
		bitrate = model.DefaultBitrate
	}

	// Remember the choices for the next session
	ui.settings.SetLastSourceFolder(folder)
	ui.settings.SetBitrate(bitrate)
	ui.settings.SetRemoveOriginals(ui.removeCheck.Checked)

	outputDir := ui.settings.GetOutputDirectory()
	if outputDir != "" {
		if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
			dialog.ShowError(fmt.Errorf("cannot create output folder %s: %v", outputDir, err), ui.window)
			return
		}
	}
	ui.runner.SetOutputDirectory(outputDir)
	ui.runner.SetRemoveOriginals(ui.removeCheck.Checked)

	ui.lastRunDir = folder
	if outputDir != "" {
		ui.lastRunDir = outputDir
	}

	ui.setRunning(true)
	ui.resetProgress()
	ui.appendLog(fmt.Sprintf("Converting %s at %s", folder, bitrate))

	go ui.runBatch(folder, bitrate)
}

// onCancelClick arms the cancel flag; the in-flight file still finishes
func (ui *RootUI) onCancelClick() {
	ui.runner.Cancel()
	ui.cancelBtn.Disable()
	ui.statusLabel.SetText("Cancelling after the current file...")
}

// onOpenFolder reveals the folder of the last run in the file manager
func (ui *RootUI) onOpenFolder() {
	if ui.lastRunDir == "" {
		return
	}
	if err := platform.OpenFolderInManager(ui.lastRunDir); err != nil {
		log.Printf("Error opening folder %s: %v", ui.lastRunDir, err)
		widget.ShowPopUp(widget.NewLabel("Could not open folder: "+err.Error()), ui.window.Canvas())
	}
}

// runBatch executes the conversion on a worker goroutine
func (ui *RootUI) runBatch(folder string, bitrate model.Bitrate) {
	summary, err := ui.runner.Run(context.Background(), folder, bitrate, ui.onFileDone)
	fyne.Do(func() {
		ui.onBatchFinished(summary, err)
	})
}

// onTaskStatus reflects per-stage task updates in the status line.
// Called from the batch goroutine.
func (ui *RootUI) onTaskStatus(task *model.ConversionTask) {
	name := task.GetDisplayName()
	status := task.Status
	fyne.Do(func() {
		if status.IsActive() {
			ui.statusLabel.SetText(fmt.Sprintf("%s: %s", statusText(status), name))
		}
	})
}

// onFileDone advances the progress display after each processed file.
// Called from the batch goroutine.
func (ui *RootUI) onFileDone(done, total int, result model.ConversionResult) {
	line := formatResultLine(result)
	fyne.Do(func() {
		ui.progressBar.SetValue(float64(done) / float64(total))
		ui.progressLabel.SetText(fmt.Sprintf(ProgressCountFormat, done, total))
		ui.appendLog(line)
	})
}

// onBatchFinished restores the controls and reports the outcome
func (ui *RootUI) onBatchFinished(summary *model.BatchSummary, err error) {
	ui.setRunning(false)

	if err != nil {
		log.Printf("Batch failed: %v", err)
		ui.statusLabel.SetText("Could not read the folder")
		dialog.ShowError(err, ui.window)
		return
	}

	if summary.Total == 0 {
		ui.statusLabel.SetText("No FLAC files found in the folder")
		ui.appendLog("No FLAC files found.")
		return
	}

	if summary.Interrupted {
		ui.statusLabel.SetText(fmt.Sprintf("Cancelled after %d of %d files", summary.Processed(), summary.Total))
		ui.appendLog("Conversion cancelled.")
	} else {
		ui.statusLabel.SetText(fmt.Sprintf("Done: %d converted, %d failed", summary.Succeeded, summary.Failed))
		ui.appendLog("Conversion complete.")
	}

	if summary.Succeeded > 0 {
		ui.openFolderBtn.Enable()
	}
}

// setRunning toggles the controls between idle and converting states
func (ui *RootUI) setRunning(running bool) {
	ui.running = running
	if running {
		ui.startBtn.Disable()
		ui.folderEntry.Disable()
		ui.bitrateSelect.Disable()
		ui.removeCheck.Disable()
		ui.openFolderBtn.Disable()
		ui.cancelBtn.Enable()
	} else {
		ui.startBtn.Enable()
		ui.folderEntry.Enable()
		ui.bitrateSelect.Enable()
		ui.removeCheck.Enable()
		ui.cancelBtn.Disable()
	}
}

// resetProgress clears the progress display for a fresh run
func (ui *RootUI) resetProgress() {
	ui.progressBar.SetValue(0)
	ui.progressLabel.SetText(fmt.Sprintf(ProgressCountFormat, 0, 0))
	ui.statusLabel.SetText("Preparing...")
	ui.activityLog.Set(nil)
}

// appendLog adds a line to the activity log and keeps the newest visible
func (ui *RootUI) appendLog(line string) {
	ui.activityLog.Append(line)
	ui.logList.ScrollToBottom()
}

// formatResultLine renders one file outcome for the activity log
func formatResultLine(result model.ConversionResult) string {
	name := result.Task.GetDisplayName()
	elapsed := result.Duration.Round(100 * time.Millisecond)
	if result.Succeeded() {
		return fmt.Sprintf("%s %s (%s)", IconDone, name, elapsed)
	}
	return fmt.Sprintf("%s %s: %s", IconFailed, name, result.Reason())
}

// statusText maps pipeline statuses to display wording
func statusText(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusExtracting:
		return "Reading tags"
	case model.TaskStatusConverting:
		return "Converting"
	case model.TaskStatusTagging:
		return "Writing tags"
	default:
		return status.String()
	}
}
