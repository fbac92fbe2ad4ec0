package ports

import (
	"digsite/domain/records"
)

// TableReaderPort loads one tabular source into a record set.
// Implementations are read-only and safe for concurrent use.
type TableReaderPort interface {
	// Load reads the table at path
	Load(path string) (*records.RecordSet, error)
}

// JournalReaderPort reads the full text of a journal file
type JournalReaderPort interface {
	Read(path string) (string, error)
}
