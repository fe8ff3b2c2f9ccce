package util

import (
	"os"
)

// IsDebugEnabled reports whether M365_DEBUG is set to a truthy value. The raw
// value is returned as well so callers can check for "api".
func IsDebugEnabled() (bool, string) {
	debugValue, isDebugSet := os.LookupEnv("M365_DEBUG")
	if !isDebugSet {
		return false, ""
	}
	switch debugValue {
	case "false", "0", "no", "":
		return false, debugValue
	default:
		return true, debugValue
	}
}

// IsAPITraceEnabled reports whether HTTP traffic should be logged.
func IsAPITraceEnabled() bool {
	_, v := IsDebugEnabled()
	return v == "api"
}
