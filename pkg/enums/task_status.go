package enums

import "fmt"

// TaskStatus is the completion state of a single checklist item.
type TaskStatus string

const (
	TaskStatusDone       TaskStatus = "Done"
	TaskStatusIssueFound TaskStatus = "Issue Found"
	TaskStatusNA         TaskStatus = "N/A"
)

var validTaskStatuses = []TaskStatus{
	TaskStatusDone,
	TaskStatusIssueFound,
	TaskStatusNA,
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical task status enum.
func (s TaskStatus) IsValid() bool {
	for _, candidate := range validTaskStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTaskStatus converts the raw string to TaskStatus.
func ParseTaskStatus(value string) (TaskStatus, error) {
	for _, candidate := range validTaskStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid task status %q", value)
}
