package scoring

import "fmt"

// CountError reports a yes count that cannot be scored against the table
type CountError struct {
	Section string
	Count   int
	Max     int
	Message string
}

func (e *CountError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("section %s: %s: %d not in [0, %d]", e.Section, e.Message, e.Count, e.Max)
	}
	return fmt.Sprintf("section %s: %s", e.Section, e.Message)
}
