package enums

import "fmt"

// SwapRequestStatus captures the lifecycle of a roster swap request.
type SwapRequestStatus string

const (
	SwapRequestStatusPending  SwapRequestStatus = "pending"
	SwapRequestStatusApproved SwapRequestStatus = "approved"
	SwapRequestStatusRejected SwapRequestStatus = "rejected"
)

var validSwapRequestStatuses = []SwapRequestStatus{
	SwapRequestStatusPending,
	SwapRequestStatusApproved,
	SwapRequestStatusRejected,
}

// String implements fmt.Stringer.
func (s SwapRequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known SwapRequestStatus.
func (s SwapRequestStatus) IsValid() bool {
	for _, candidate := range validSwapRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the request can no longer transition.
func (s SwapRequestStatus) IsTerminal() bool {
	return s == SwapRequestStatusApproved || s == SwapRequestStatusRejected
}

// ParseSwapRequestStatus converts raw input into a SwapRequestStatus.
func ParseSwapRequestStatus(value string) (SwapRequestStatus, error) {
	for _, candidate := range validSwapRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid swap request status %q", value)
}
