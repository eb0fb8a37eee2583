package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soundconv/flac2mp3/internal/model"
)

const (
	// TaskIDPrefix namespaces batch task IDs
	TaskIDPrefix = "convert-"

	// SourceExtension is the only input format picked up from a folder
	SourceExtension = ".flac"

	// OutputExtension replaces the source extension on converted files
	OutputExtension = ".mp3"
)

// ProgressFunc receives one call per processed file with the running count
type ProgressFunc func(done, total int, result model.ConversionResult)

// Runner drives the conversion pipeline over a folder of source files,
// strictly one file at a time
type Runner struct {
	extractor Extractor
	converter Converter
	tagger    Tagger
	log       *logrus.Logger

	outputDir       string
	removeOriginals bool

	onStatus  func(*model.ConversionTask) // callback for UI updates
	cancelled atomic.Bool
}

// NewRunner creates a runner over the three pipeline stages
func NewRunner(extractor Extractor, converter Converter, tagger Tagger, log *logrus.Logger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		extractor: extractor,
		converter: converter,
		tagger:    tagger,
		log:       log,
	}
}

// SetStatusCallback sets the callback invoked on every task status change
func (r *Runner) SetStatusCallback(callback func(*model.ConversionTask)) {
	r.onStatus = callback
}

// SetOutputDirectory routes converted files into dir instead of writing
// them alongside their sources. Empty restores the default.
func (r *Runner) SetOutputDirectory(dir string) {
	r.outputDir = dir
}

// SetRemoveOriginals enables deleting each source file once its conversion
// completed. Failed conversions always keep their source.
func (r *Runner) SetRemoveOriginals(remove bool) {
	r.removeOriginals = remove
}

// Cancel requests that the run stop once the in-flight file reaches a
// terminal state. Safe to call from any goroutine. The flag is re-armed at
// the start of every run, so a stale request never cancels a later batch.
func (r *Runner) Cancel() {
	r.cancelled.Store(true)
}

// Run converts every FLAC file found directly in dir, in filename order,
// at the given bitrate. Each file moves through extraction, transcoding
// and tagging to a terminal state before the next one starts; a failed
// file is recorded and the run continues. progress, when set, is invoked
// after every file. The summary is non-nil whenever enumeration succeeded,
// including for an empty folder and for a cancelled run.
func (r *Runner) Run(ctx context.Context, dir string, bitrate model.Bitrate, progress ProgressFunc) (*model.BatchSummary, error) {
	r.cancelled.Store(false)

	sources, err := enumerateSources(dir)
	if err != nil {
		return nil, err
	}

	summary := &model.BatchSummary{Total: len(sources)}
	started := time.Now()

	r.log.WithFields(logrus.Fields{
		"dir":     dir,
		"files":   summary.Total,
		"bitrate": bitrate.String(),
	}).Info("Starting batch conversion")

	if summary.Total == 0 {
		r.log.WithField("dir", dir).Warn("No FLAC files found")
		return summary, nil
	}

	for _, sourcePath := range sources {
		if r.cancelled.Load() || ctx.Err() != nil {
			summary.Interrupted = true
			break
		}

		task := r.newTask(sourcePath, bitrate)
		result := r.processFile(ctx, task)
		summary.Add(result)

		entry := r.log.WithFields(logrus.Fields{
			"task":     task.ID,
			"file":     filepath.Base(sourcePath),
			"duration": result.Duration.Round(time.Millisecond),
		})
		if result.Succeeded() {
			entry.Info("Converted")
		} else {
			entry.WithError(result.Err).Error("Conversion failed")
		}

		if progress != nil {
			progress(summary.Processed(), summary.Total, result)
		}
	}

	summary.Duration = time.Since(started)

	r.log.WithFields(logrus.Fields{
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
		"interrupted": summary.Interrupted,
		"duration":    summary.Duration.Round(time.Millisecond),
	}).Info("Batch finished")

	return summary, nil
}

// processFile runs one task through the pipeline to a terminal state
func (r *Runner) processFile(ctx context.Context, task *model.ConversionTask) model.ConversionResult {
	start := time.Now()
	task.StartedAt = start

	r.setStatus(task, model.TaskStatusExtracting)
	record, err := r.extractor.Extract(task.SourcePath)
	if err != nil {
		return r.fail(task, start, err)
	}

	r.setStatus(task, model.TaskStatusConverting)
	if err := r.converter.Convert(ctx, task); err != nil {
		return r.fail(task, start, err)
	}

	r.setStatus(task, model.TaskStatusTagging)
	if err := r.tagger.Apply(task.OutputPath, record); err != nil {
		return r.fail(task, start, err)
	}

	task.FinishedAt = time.Now()
	r.setStatus(task, model.TaskStatusCompleted)

	if r.removeOriginals {
		if err := os.Remove(task.SourcePath); err != nil {
			r.log.WithError(err).WithField("file", task.SourcePath).Warn("Could not remove original file")
		}
	}

	return model.ConversionResult{
		Task:     task,
		Status:   model.TaskStatusCompleted,
		Duration: time.Since(start),
	}
}

// fail marks the task failed and packages the terminal result
func (r *Runner) fail(task *model.ConversionTask, start time.Time, err error) model.ConversionResult {
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	r.setStatus(task, model.TaskStatusFailed)

	return model.ConversionResult{
		Task:     task,
		Status:   model.TaskStatusFailed,
		Err:      err,
		Duration: time.Since(start),
	}
}

// setStatus advances the task status and notifies the callback if set
func (r *Runner) setStatus(task *model.ConversionTask, status model.TaskStatus) {
	task.Status = status
	if r.onStatus != nil {
		r.onStatus(task)
	}
}

// enumerateSources lists the FLAC files directly inside dir in filename
// order. The extension match is case-insensitive; subdirectories are not
// entered.
func enumerateSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: err}
	}

	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), SourceExtension) {
			sources = append(sources, filepath.Join(dir, entry.Name()))
		}
	}
	return sources, nil
}

// newTask builds the task for one source file, deriving the output path
// from the configured output directory or the source's own folder
func (r *Runner) newTask(sourcePath string, bitrate model.Bitrate) *model.ConversionTask {
	outDir := r.outputDir
	if outDir == "" {
		outDir = filepath.Dir(sourcePath)
	}

	base := filepath.Base(sourcePath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + OutputExtension

	return &model.ConversionTask{
		ID:         generateTaskID(),
		SourcePath: sourcePath,
		OutputPath: filepath.Join(outDir, name),
		Bitrate:    bitrate,
		Status:     model.TaskStatusPending,
	}
}

// generateTaskID generates a unique task ID using UUID v7 for time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
