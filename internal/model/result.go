package model

import "time"

// ConversionResult is the terminal outcome of one task
type ConversionResult struct {
	Task     *ConversionTask
	Status   TaskStatus // TaskStatusCompleted or TaskStatusFailed
	Err      error      // typed cause when Status is TaskStatusFailed
	Duration time.Duration
}

// Succeeded returns true if the task completed without error
func (cr ConversionResult) Succeeded() bool {
	return cr.Status == TaskStatusCompleted
}

// Reason returns the human-readable failure cause, or "" on success
func (cr ConversionResult) Reason() string {
	if cr.Err == nil {
		return ""
	}
	return cr.Err.Error()
}

// BatchSummary aggregates the results of one batch run in processing order
type BatchSummary struct {
	Results   []ConversionResult
	Total     int // files enumerated at the start of the run
	Succeeded int
	Failed    int

	// Interrupted is set when the run stopped on a cancel request before
	// reaching the end of the file list
	Interrupted bool

	Duration time.Duration
}

// Add appends a result and updates the counters
func (bs *BatchSummary) Add(result ConversionResult) {
	bs.Results = append(bs.Results, result)
	if result.Succeeded() {
		bs.Succeeded++
	} else {
		bs.Failed++
	}
}

// Processed returns how many files reached a terminal state
func (bs *BatchSummary) Processed() int {
	return len(bs.Results)
}

// Remaining returns how many enumerated files were never processed
func (bs *BatchSummary) Remaining() int {
	remaining := bs.Total - len(bs.Results)
	if remaining < 0 {
		return 0
	}
	return remaining
}
