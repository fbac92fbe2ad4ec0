package excel

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// serialKind says how a numeric cell's number format presents it
type serialKind int

const (
	serialPlain serialKind = iota
	serialDate
	serialDateTime
	serialTime
)

// layout is the ISO rendering for a date or time serial
func (k serialKind) layout() string {
	switch k {
	case serialDate:
		return "2006-01-02"
	case serialDateTime:
		return "2006-01-02 15:04:05"
	case serialTime:
		return "15:04:05"
	}
	return ""
}

// builtInSerialKind classifies the built-in number format ids of ECMA-376 18.8.30,
// including the East Asian date ids excelize maps.
func builtInSerialKind(id int) serialKind {
	switch {
	case id >= 14 && id <= 17, id >= 27 && id <= 31, id >= 34 && id <= 36, id >= 50 && id <= 58:
		return serialDate
	case id == 22:
		return serialDateTime
	case id >= 18 && id <= 21, id >= 32 && id <= 33, id >= 45 && id <= 47:
		return serialTime
	}
	return serialPlain
}

// customSerialKind classifies a custom format code by its date and time tokens.
// Only the positive section counts; quoted literals, escapes and bracketed
// colors or locales are ignored.
func customSerialKind(code string) serialKind {
	if i := strings.IndexByte(code, ';'); i >= 0 {
		code = code[:i]
	}

	var b strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			inQuote = c != '"'
		case c == '"':
			inQuote = true
		case c == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				i = len(code)
				continue
			}
			// elapsed time such as [h] or [mm]; colors and locales are skipped
			if inner := strings.ToLower(code[i+1 : i+end]); inner != "" && strings.Trim(inner, "hms") == "" {
				b.WriteString(inner)
			}
			i += end
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			b.WriteByte(c)
		}
	}

	tokens := strings.ToLower(b.String())
	hasDate := strings.ContainsAny(tokens, "yd")
	hasTime := strings.ContainsAny(tokens, "hs")
	switch {
	case hasDate && hasTime:
		return serialDateTime
	case hasDate:
		return serialDate
	case hasTime:
		return serialTime
	}
	return serialPlain
}

// styleSerialKinds resolves and caches the serial kind of each cell style in a workbook
type styleSerialKinds struct {
	f     *excelize.File
	kinds map[int]serialKind
}

func newStyleSerialKinds(f *excelize.File) *styleSerialKinds {
	return &styleSerialKinds{f: f, kinds: make(map[int]serialKind)}
}

// of returns the serial kind of the cell at ref. Unreadable styles count as plain.
func (s *styleSerialKinds) of(sheet, ref string) serialKind {
	idx, err := s.f.GetCellStyle(sheet, ref)
	if err != nil || idx == 0 {
		return serialPlain
	}
	if kind, ok := s.kinds[idx]; ok {
		return kind
	}

	kind := serialPlain
	if style, err := s.f.GetStyle(idx); err == nil {
		kind = builtInSerialKind(style.NumFmt)
		if kind == serialPlain && style.CustomNumFmt != nil {
			kind = customSerialKind(*style.CustomNumFmt)
		}
	}
	s.kinds[idx] = kind
	return kind
}
