package table

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the formats recognized during cell inference. Matched
// values are written to the workbook as real dates rather than text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// InferredKind identifies how a raw cell string was interpreted.
type InferredKind int

const (
	KindString InferredKind = iota
	KindInt
	KindFloat
	KindTime
)

// Infer converts a raw cell string into a typed value for spreadsheet
// output: integer, float, date, or the original string. Leading and
// trailing whitespace does not affect detection but the original string is
// returned verbatim when nothing matches.
func Infer(raw string) (any, InferredKind) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return raw, KindString
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, KindInt
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, KindFloat
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, KindTime
		}
	}
	return raw, KindString
}
