package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"digsite/app"
	"digsite/domain/records"
	"digsite/internal/journal"
)

// tableView is the JSON shape of a loaded table
type tableView struct {
	Path    string                     `json:"path"`
	Missing bool                       `json:"missing"`
	Headers []string                   `json:"headers,omitempty"`
	Rows    []map[string]records.Value `json:"rows,omitempty"`
	Info    []records.ColumnInfo       `json:"info,omitempty"`
	Stats   []records.ColumnStats      `json:"stats,omitempty"`
}

type journalView struct {
	Path    string   `json:"path"`
	Missing bool     `json:"missing"`
	Dates   []string `json:"dates"`
	Codes   []string `json:"codes"`
}

type reportView struct {
	Artifacts tableView   `json:"artifacts"`
	Locations tableView   `json:"locations"`
	Journal   journalView `json:"journal"`
	RuntimeMs int64       `json:"runtime_ms"`
}

func newTableView(path string, rs *records.RecordSet) tableView {
	if rs == nil {
		return tableView{Path: path, Missing: true}
	}
	return tableView{Path: path, Headers: rs.Headers, Rows: rs.Records(), Info: rs.Info()}
}

func newJournalView(path string, tokens *journal.Extraction) journalView {
	if tokens == nil {
		return journalView{Path: path, Missing: true, Dates: []string{}, Codes: []string{}}
	}
	return journalView{Path: path, Dates: tokens.Dates, Codes: tokens.Codes}
}

func newReportView(report *app.SurveyReport) reportView {
	return reportView{
		Artifacts: newTableView(report.Artifacts.Path, report.Artifacts.Records),
		Locations: newTableView(report.Locations.Path, report.Locations.Records),
		Journal:   newJournalView(report.Journal.Path, report.Journal.Tokens),
		RuntimeMs: report.RuntimeMs,
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeNotFound(w io.Writer, path string) {
	fmt.Fprintf(w, "Error: File not found at %s\n", path)
}

// writeTable prints the table preview followed by its column info
func writeTable(w io.Writer, rs *records.RecordSet, previewRows int) error {
	fmt.Fprintf(w, "Successfully loaded table. First %d rows:\n", previewRows)
	if err := writeRows(w, rs, previewRows); err != nil {
		return err
	}
	fmt.Fprintln(w, "\nTable Info:")
	return writeInfo(w, rs)
}

func writeRows(w io.Writer, rs *records.RecordSet, n int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(rs.Headers, "\t"))
	for _, row := range rs.Head(n) {
		cells := make([]string, len(rs.Headers))
		for i, h := range rs.Headers {
			v := row.Get(h)
			if v.IsMissing() {
				cells[i] = "NaN"
			} else {
				cells[i] = v.String()
			}
		}
		fmt.Fprintf(tw, "%d\t%s\n", row.Index, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeInfo(w io.Writer, rs *records.RecordSet) error {
	fmt.Fprintf(w, "Source: %s\n", rs.Source)
	fmt.Fprintf(w, "%d entries, %d columns\n", rs.Len(), len(rs.Headers))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tColumn\tNon-Null Count\tDtype")
	for i, info := range rs.Info() {
		fmt.Fprintf(tw, "%d\t%s\t%d non-null\t%s\n", i, info.Name, info.NonNull, info.Dtype)
	}
	return tw.Flush()
}

func writeStats(w io.Writer, described []records.ColumnStats) error {
	if len(described) == 0 {
		fmt.Fprintln(w, "No numeric columns to describe.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax\t")
	for _, s := range described {
		fmt.Fprintf(tw, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			s.Name, s.Count, s.Mean, s.Std, s.Min, s.Q1, s.Q2, s.Q3, s.Max)
	}
	return tw.Flush()
}

func writeTokens(w io.Writer, tokens journal.Extraction) {
	fmt.Fprintln(w, "\nExtracting Dates...")
	fmt.Fprintf(w, "Found dates: %s\n", formatList(tokens.Dates))
	fmt.Fprintln(w, "\nExtracting Secret Codes...")
	fmt.Fprintf(w, "Found codes: %s\n", formatList(tokens.Codes))
}

func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// writeReport prints every survey section in a fixed order
func writeReport(w io.Writer, report *app.SurveyReport, previewRows int) error {
	sections := []struct {
		title   string
		section app.TableSection
	}{
		{"Loading Artifact Data", report.Artifacts},
		{"Loading Location Notes", report.Locations},
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "--- %s from %s ---\n", s.title, s.section.Path)
		if s.section.Missing {
			writeNotFound(w, s.section.Path)
			continue
		}
		if err := writeTable(w, s.section.Records, previewRows); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n--- Processing Journal from %s ---\n", report.Journal.Path)
	if report.Journal.Missing {
		writeNotFound(w, report.Journal.Path)
		return nil
	}
	writeTokens(w, *report.Journal.Tokens)
	return nil
}
