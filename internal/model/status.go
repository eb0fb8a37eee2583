package model

// TaskStatus represents the status of a conversion task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusExtracting means source metadata is being read
	TaskStatusExtracting TaskStatus = "Extracting"

	// TaskStatusConverting means the audio transcode is in progress
	TaskStatusConverting TaskStatus = "Converting"

	// TaskStatusTagging means frames are being written to the output file
	TaskStatusTagging TaskStatus = "Tagging"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusFailed means the task failed with an error
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusExtracting || ts == TaskStatusConverting || ts == TaskStatusTagging
}

// IsFinished returns true if the task reached a terminal state (completed or failed)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusFailed
}
