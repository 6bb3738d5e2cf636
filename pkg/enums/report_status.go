package enums

import "fmt"

// ReportStatus is the lifecycle state of a daily report. The only transition
// guard lives in the reports service: moving to Approved requires an admin.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "Pending"
	ReportStatusApproved ReportStatus = "Approved"
)

var validReportStatuses = []ReportStatus{
	ReportStatusPending,
	ReportStatusApproved,
}

// String implements fmt.Stringer.
func (s ReportStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches the canonical report status enum.
func (s ReportStatus) IsValid() bool {
	for _, candidate := range validReportStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseReportStatus converts the raw string to ReportStatus.
func ParseReportStatus(value string) (ReportStatus, error) {
	for _, candidate := range validReportStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report status %q", value)
}
