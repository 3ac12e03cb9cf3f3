package enums

import "fmt"

// FeedbackType classifies a feedback submission.
type FeedbackType string

const (
	FeedbackTypePraise     FeedbackType = "praise"
	FeedbackTypeSuggestion FeedbackType = "suggestion"
	FeedbackTypeProblem    FeedbackType = "problem"
)

var validFeedbackTypes = []FeedbackType{
	FeedbackTypePraise,
	FeedbackTypeSuggestion,
	FeedbackTypeProblem,
}

// String implements fmt.Stringer.
func (f FeedbackType) String() string {
	return string(f)
}

// IsValid reports whether the value matches a known FeedbackType.
func (f FeedbackType) IsValid() bool {
	for _, candidate := range validFeedbackTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFeedbackType converts raw input into a FeedbackType.
func ParseFeedbackType(value string) (FeedbackType, error) {
	for _, candidate := range validFeedbackTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid feedback type %q", value)
}
