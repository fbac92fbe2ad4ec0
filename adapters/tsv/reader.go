package tsv

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"digsite/adapters/coercer"
	"digsite/domain/records"
	"digsite/internal/errors"
	"digsite/internal/logging"
)

// Delimiter separates fields; there is no quoting or escaping
const Delimiter = "\t"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads a tab-delimited table whose first line is the header
type Reader struct {
	filePath string
	coercer  *coercer.TypeCoercer
}

// NewReader creates a reader for filePath. A nil coercer uses the defaults.
func NewReader(filePath string, c *coercer.TypeCoercer) *Reader {
	if c == nil {
		c = coercer.NewTypeCoercer(coercer.DefaultCoercionConfig())
	}
	return &Reader{filePath: filePath, coercer: c}
}

// LoadLocationNotes reads a tab-separated location table
func LoadLocationNotes(path string) (*records.RecordSet, error) {
	return NewReader(path, nil).Read()
}

// Read loads the whole file. Rows shorter than the header are padded with
// missing values; rows longer than the header are a format error.
func (r *Reader) Read() (*records.RecordSet, error) {
	logger := logging.WithSource("tsv", r.filePath)

	readStart := time.Now()
	content, err := os.ReadFile(r.filePath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.FileNotFound(r.filePath, err)
		}
		return nil, errors.Wrapf(err, "failed to read %s", r.filePath)
	}
	logger.Debug("file read", "bytes", len(content), "duration_ms", time.Since(readStart).Milliseconds())

	if !utf8.Valid(content) {
		return nil, errors.FormatError(r.filePath, "content is not valid UTF-8", nil)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	rs, err := r.processLines(strings.Split(string(content), "\n"))
	if err != nil {
		return nil, err
	}
	logger.Debug("table processed", "columns", len(rs.Headers), "rows", rs.Len())
	return rs, nil
}

func (r *Reader) processLines(lines []string) (*records.RecordSet, error) {
	var rs *records.RecordSet
	for n, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, Delimiter)

		if rs == nil {
			rs = &records.RecordSet{Source: r.filePath, Headers: records.NormalizeHeaders(fields)}
			continue
		}
		if len(fields) > len(rs.Headers) {
			return nil, errors.FormatError(r.filePath,
				fmt.Sprintf("line %d: expected %d fields, saw %d", n+1, len(rs.Headers), len(fields)), nil)
		}

		cells := make(map[string]records.Value, len(rs.Headers))
		for i, h := range rs.Headers {
			if i < len(fields) {
				cells[h] = r.coercer.CoerceCell(fields[i])
			} else {
				cells[h] = records.NewMissing()
			}
		}
		rs.Rows = append(rs.Rows, records.Row{Index: len(rs.Rows), Cells: cells})
	}

	if rs == nil {
		return nil, errors.FormatError(r.filePath, "no header line", nil)
	}
	return rs, nil
}

// LocationLoader adapts LoadLocationNotes to ports.TableReaderPort
type LocationLoader struct{}

func (LocationLoader) Load(path string) (*records.RecordSet, error) {
	return LoadLocationNotes(path)
}
