package source

import (
	"strconv"
	"strings"
)

const invalidGoalChars = `/:*?"<>|`

// GoalError returns a non-empty message when goal cannot be used in a file name.
func GoalError(goal string) string {
	if strings.ContainsAny(goal, invalidGoalChars) {
		return `Goal contains invalid characters. Please avoid: / : * ? " < > |`
	}
	return ""
}

// ParseMinutes parses a positive whole number of minutes.
func ParseMinutes(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// ValidateStart checks goal and minutes before a session is started.
func ValidateStart(goal string, minutes uint64) error {
	if minutes == 0 {
		return &ValidationError{Field: "time", Msg: "Please enter a valid time in minutes"}
	}
	if strings.TrimSpace(goal) == "" {
		return &ValidationError{Field: "goal", Msg: "Please enter a goal"}
	}
	if msg := GoalError(goal); msg != "" {
		return &ValidationError{Field: "goal", Msg: msg}
	}
	return nil
}
