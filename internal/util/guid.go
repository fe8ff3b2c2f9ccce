package util

import (
	"github.com/google/uuid"
)

// IsValidGUID reports whether s is a GUID in the hyphenated 8-4-4-4-12 form.
func IsValidGUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
