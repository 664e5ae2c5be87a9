package beat

import "errors"

var (
	// ErrBeatNotFound indicates the beat doesn't exist.
	ErrBeatNotFound = errors.New("beat not found")
	// ErrInvalidEndTime indicates an end time before the start time.
	ErrInvalidEndTime = errors.New("end time must be after start time")
	// ErrInvalidInput indicates invalid beat input.
	ErrInvalidInput = errors.New("invalid beat input")
	// ErrProjectNotFound indicates the referenced project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
)
