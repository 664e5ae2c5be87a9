package sqlite

import "strings"

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isActiveBeatViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "idx_beats_single_active")
}
