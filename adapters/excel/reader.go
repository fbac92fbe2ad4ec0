package excel

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"digsite/adapters/coercer"
	"digsite/domain/records"
	"digsite/internal/errors"
	"digsite/internal/logging"

	"github.com/xuri/excelize/v2"
)

const (
	// DefaultSheetName is the sheet holding the artifact inventory
	DefaultSheetName = "Main Chamber"
	// DefaultSkipRows is the number of title rows above the header
	DefaultSkipRows = 3
)

// SheetSpec locates a table inside a workbook
type SheetSpec struct {
	Name     string
	SkipRows int // rows discarded entirely before the header row
}

// DefaultSheetSpec returns the artifact sheet layout
func DefaultSheetSpec() SheetSpec {
	return SheetSpec{Name: DefaultSheetName, SkipRows: DefaultSkipRows}
}

// Reader loads one sheet of an xlsx workbook into a record set
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

// LoadArtifactData reads the "Main Chamber" sheet, skipping its first 3 rows
func LoadArtifactData(path string) (*records.RecordSet, error) {
	return NewReader(path, nil).Read(DefaultSheetSpec())
}

// Read loads the table described by sheet
func (r *Reader) Read(sheet SheetSpec) (*records.RecordSet, error) {
	logger := logging.WithSource("excel", r.filePath)

	if sheet.SkipRows < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("skip rows must not be negative, got %d", sheet.SkipRows))
	}
	if _, err := os.Stat(r.filePath); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.FileNotFound(r.filePath, err)
		}
		return nil, errors.Wrapf(err, "failed to stat %s", r.filePath)
	}

	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.FormatError(r.filePath, "not a valid xlsx workbook", err)
	}
	defer f.Close()
	logger.Debug("workbook opened", "duration_ms", time.Since(startTime).Milliseconds())

	idx, err := f.GetSheetIndex(sheet.Name)
	if err != nil {
		return nil, errors.FormatError(r.filePath, "invalid sheet name", err)
	}
	if idx == -1 {
		return nil, errors.SheetNotFound(sheet.Name, r.filePath)
	}

	readStart := time.Now()
	display, err := f.GetRows(sheet.Name)
	if err != nil {
		return nil, errors.FormatError(r.filePath, fmt.Sprintf("failed to read sheet %q", sheet.Name), err)
	}
	raw, err := f.GetRows(sheet.Name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.FormatError(r.filePath, fmt.Sprintf("failed to read sheet %q", sheet.Name), err)
	}
	logger.Debug("sheet read", "sheet", sheet.Name, "rows", len(display),
		"duration_ms", time.Since(readStart).Milliseconds())

	if len(display) <= sheet.SkipRows {
		return nil, errors.FormatError(r.filePath,
			fmt.Sprintf("sheet %q has no header row after skipping %d rows", sheet.Name, sheet.SkipRows), nil)
	}

	rs, err := r.processRows(f, sheet, display, raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("sheet processed", "columns", len(rs.Headers), "rows", rs.Len())
	return rs, nil
}

// processRows converts the header row and everything below it into a record set.
// Blank rows between the skipped rows and the header are passed over, the same
// way blank data rows are.
func (r *Reader) processRows(f *excelize.File, sheet SheetSpec, display, raw [][]string) (*records.RecordSet, error) {
	headerIdx := sheet.SkipRows
	for headerIdx < len(display) && isBlankRow(display[headerIdx]) {
		headerIdx++
	}
	if headerIdx == len(display) {
		return nil, errors.FormatError(r.filePath,
			fmt.Sprintf("sheet %q has no header row after skipping %d rows", sheet.Name, sheet.SkipRows), nil)
	}

	width := 0
	for _, row := range display[headerIdx:] {
		if len(row) > width {
			width = len(row)
		}
	}

	headerRow := make([]string, width)
	copy(headerRow, display[headerIdx])
	headers := records.NormalizeHeaders(headerRow)

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	typer := &cellTyper{
		f:        f,
		sheet:    sheet.Name,
		date1904: date1904,
		coercer:  r.coercer,
		formats:  newStyleSerialKinds(f),
	}

	rs := &records.RecordSet{Source: r.filePath, Headers: headers}
	for i := headerIdx + 1; i < len(display); i++ {
		if isBlankRow(display[i]) {
			continue
		}
		cells := make(map[string]records.Value, width)
		for j, h := range headers {
			cells[h] = typer.value(i, j, cellAt(display, i, j), cellAt(raw, i, j))
		}
		rs.Rows = append(rs.Rows, records.Row{Index: len(rs.Rows), Cells: cells})
	}
	return rs, nil
}

// cellTyper types the cells of one sheet from their stored values and number formats
type cellTyper struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	coercer  *coercer.TypeCoercer
	formats  *styleSerialKinds
}

// value types one cell. row and col are 0-based.
func (t *cellTyper) value(row, col int, display, raw string) records.Value {
	if display == "" && raw == "" {
		return records.NewMissing()
	}
	if t.coercer.IsNA(display) {
		return records.NewMissing()
	}

	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return records.NewString(display)
	}
	cellType, err := t.f.GetCellType(t.sheet, ref)
	if err != nil {
		cellType = excelize.CellTypeUnset
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeBool, excelize.CellTypeError:
		return records.NewString(display)
	case excelize.CellTypeDate:
		// ISO 8601 text stored as-is
		return records.NewString(raw)
	}

	// numbers and formula results keep their stored value whatever the format shows
	n, ok := coercer.ParseNumber(raw)
	if !ok {
		return records.NewString(display)
	}
	if kind := t.formats.of(t.sheet, ref); kind != serialPlain {
		if ts, err := excelize.ExcelDateToTime(n, t.date1904); err == nil {
			return records.NewString(ts.Format(kind.layout()))
		}
	}
	return records.NewNumber(n)
}

func cellAt(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// ArtifactLoader adapts LoadArtifactData to ports.TableReaderPort
type ArtifactLoader struct{}

func (ArtifactLoader) Load(path string) (*records.RecordSet, error) {
	return LoadArtifactData(path)
}
