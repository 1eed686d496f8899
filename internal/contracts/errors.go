package contracts

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a record source line that is not five numbers
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidRange marks a climatology window whose start is after its end
	ErrInvalidRange = errors.New("invalid year range")
	// ErrDivisionUndefined marks a zero climatological mean under the strict policy
	ErrDivisionUndefined = errors.New("percentage anomaly undefined for zero climatological mean")
	// ErrUnknownColumn marks a column or label the table does not expose
	ErrUnknownColumn = errors.New("unknown column")
	// ErrEmptyTable marks an operation that needs at least one row
	ErrEmptyTable = errors.New("empty table")
)

// MalformedRecordError describes the offending line of a record source
type MalformedRecordError struct {
	Line   int // 1-based
	Text   string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed record at line %d (%q): %s: %v", e.Line, e.Text, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed record at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Is makes errors.Is(err, ErrMalformedRecord) hold
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
