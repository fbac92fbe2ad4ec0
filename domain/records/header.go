package records

import "fmt"

// NormalizeHeaders turns a raw header row into unique column names.
// Names are kept verbatim, surrounding spaces included. Empty names become
// "Unnamed: <i>" and repeats get ".1", ".2", ... suffixes.
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, name := range raw {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for n := seen[base]; seen[name] > 0; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		seen[base]++
		if name != base {
			seen[name]++
		}
		headers[i] = name
	}
	return headers
}
