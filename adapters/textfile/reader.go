package textfile

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"time"
	"unicode/utf8"

	"digsite/internal/errors"
	"digsite/internal/logging"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadJournal returns the full UTF-8 content of a journal file
func ReadJournal(path string) (string, error) {
	logger := logging.WithSource("textfile", path)

	readStart := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", errors.FileNotFound(path, err)
		}
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	if !utf8.Valid(content) {
		return "", errors.FormatError(path, "content is not valid UTF-8", nil)
	}
	logger.Debug("journal read", "bytes", len(content), "duration_ms", time.Since(readStart).Milliseconds())

	return string(bytes.TrimPrefix(content, utf8BOM)), nil
}

// JournalReader adapts ReadJournal to ports.JournalReaderPort
type JournalReader struct{}

func (JournalReader) Read(path string) (string, error) {
	return ReadJournal(path)
}
