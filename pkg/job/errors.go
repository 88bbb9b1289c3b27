package job

import "errors"

// Job errors.
var (
	// ErrInvalidSchedule is returned when a cron expression cannot be parsed.
	ErrInvalidSchedule = errors.New("job: invalid schedule")

	// ErrInvalidTask is returned for a task without a name or handler.
	ErrInvalidTask = errors.New("job: invalid task")

	// ErrAlreadyStarted is returned when scheduling on, or running, a scheduler
	// that is already running.
	ErrAlreadyStarted = errors.New("job: already started")
)
