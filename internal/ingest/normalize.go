package ingest

import (
	"fmt"
	"time"
)

// sourceTimeLayout is the timestamp format the X API returns, ISO-8601 with
// millisecond precision and a zone suffix.
const sourceTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// MalformedTimestampError means a fetched item carried a timestamp that does
// not match the source format. It is a per-item defect, never fatal to a batch.
type MalformedTimestampError struct {
	Value string
	Err   error
}

// Error implements the error interface
func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed source timestamp %q: %v", e.Value, e.Err)
}

// Unwrap returns the underlying parse error
func (e *MalformedTimestampError) Unwrap() error {
	return e.Err
}

// Normalize converts a source timestamp into the store's canonical form:
// UTC, second precision.
func Normalize(sourceTimestamp string) (time.Time, error) {
	t, err := time.Parse(sourceTimeLayout, sourceTimestamp)
	if err != nil {
		return time.Time{}, &MalformedTimestampError{Value: sourceTimestamp, Err: err}
	}
	return t.UTC().Truncate(time.Second), nil
}
