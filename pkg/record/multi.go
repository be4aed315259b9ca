package record

import "github.com/teslashibe/go-arena/pkg/tracking"

// Multi writes every record to each sink in order and stops at the first error.
type Multi []tracking.RecordSink

// WriteRecord implements tracking.RecordSink.
func (m Multi) WriteRecord(rec tracking.Record) error {
	for _, s := range m {
		if err := s.WriteRecord(rec); err != nil {
			return err
		}
	}
	return nil
}
