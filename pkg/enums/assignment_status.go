package enums

import "fmt"

// AssignmentStatus tracks one member's duty within a roster.
type AssignmentStatus string

const (
	AssignmentStatusPending       AssignmentStatus = "pending"
	AssignmentStatusConfirmed     AssignmentStatus = "confirmed"
	AssignmentStatusSwapRequested AssignmentStatus = "swap_requested"
)

var validAssignmentStatuses = []AssignmentStatus{
	AssignmentStatusPending,
	AssignmentStatusConfirmed,
	AssignmentStatusSwapRequested,
}

// String implements fmt.Stringer.
func (s AssignmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known AssignmentStatus.
func (s AssignmentStatus) IsValid() bool {
	for _, candidate := range validAssignmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAssignmentStatus converts raw input into an AssignmentStatus.
func ParseAssignmentStatus(value string) (AssignmentStatus, error) {
	for _, candidate := range validAssignmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid assignment status %q", value)
}
