package prscalc

import "strings"

// naTokens are the cell values treated as missing, mirroring the defaults used
// by common spreadsheet and dataframe tooling.
var naTokens = map[string]struct{}{
	"":         {},
	"NA":       {},
	"N/A":      {},
	"n/a":      {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"NaN":      {},
	"nan":      {},
	"-NaN":     {},
	"-nan":     {},
	"<NA>":     {},
	"NULL":     {},
	"null":     {},
	"None":     {},
}

// IsMissing reports whether a raw cell value should be treated as absent.
func IsMissing(value string) bool {
	_, exists := naTokens[strings.TrimSpace(value)]
	return exists
}

// Field returns the trimmed value at col, and false if the row is too short
// or the value is missing.
func Field(row []string, col int) (string, bool) {
	if col < 0 || col >= len(row) {
		return "", false
	}
	if IsMissing(row[col]) {
		return "", false
	}

	return strings.TrimSpace(row[col]), true
}

// HeaderIndex maps each column name to its position. If a name repeats, the
// first occurrence wins. A UTF-8 byte order mark on the first name is
// ignored.
func HeaderIndex(header []string) map[string]int {
	out := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		name = strings.TrimSpace(name)
		if _, exists := out[name]; !exists {
			out[name] = i
		}
	}

	return out
}

// RequireColumns returns the positions of the named columns, or a
// MissingColumnError for the first one that is absent.
func RequireColumns(header []string, names ...string) ([]int, error) {
	idx := HeaderIndex(header)
	out := make([]int, 0, len(names))
	for _, name := range names {
		col, exists := idx[name]
		if !exists {
			return nil, MissingColumnError{Column: name, Header: header}
		}
		out = append(out, col)
	}

	return out, nil
}
