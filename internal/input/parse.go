// Package input collects yes counts from an operator or from an answer sheet file.
package input

import (
	"fmt"
	"strconv"
	"strings"
)

// CountErrorKind classifies why a typed count was rejected
type CountErrorKind int

const (
	// NotInteger means the text did not parse as a base-10 integer
	NotInteger CountErrorKind = iota
	// OutOfRange means the integer fell outside [0, max]
	OutOfRange
)

// CountError is the validation failure for one typed count
type CountError struct {
	Kind  CountErrorKind
	Input string
	Max   int
}

func (e *CountError) Error() string {
	if e.Kind == OutOfRange {
		return fmt.Sprintf("Please enter a value between 0 and %d.", e.Max)
	}
	return "Please enter a valid integer."
}

// ParseCount validates one typed answer: an integer in [0, maxCount]
func ParseCount(raw string, maxCount int) (int, error) {
	text := strings.TrimSpace(raw)
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, &CountError{Kind: NotInteger, Input: text, Max: maxCount}
	}
	if value < 0 || value > maxCount {
		return 0, &CountError{Kind: OutOfRange, Input: text, Max: maxCount}
	}
	return value, nil
}
