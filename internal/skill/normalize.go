package skill

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Input is the raw skills field, tagged by its encoding.
type Input interface {
	raw() string
}

// JSONArray is a JSON-encoded array such as `["Java","SQL"]`.
type JSONArray string

// CSV is a comma-separated list such as `Java,SQL`.
type CSV string

func (j JSONArray) raw() string { return string(j) }
func (c CSV) raw() string       { return string(c) }

// ParseInput tags raw as JSONArray when it is a valid JSON array and as CSV
// otherwise.
func ParseInput(raw string) Input {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") && gjson.Valid(trimmed) && gjson.Parse(trimmed).IsArray() {
		return JSONArray(trimmed)
	}
	return CSV(raw)
}

// Normalize returns the trimmed, non-empty skills in input order. Duplicates
// are kept.
func Normalize(in Input) []string {
	var values []string
	switch v := in.(type) {
	case JSONArray:
		for _, r := range gjson.Parse(v.raw()).Array() {
			values = append(values, r.String())
		}
	case CSV:
		values = strings.Split(v.raw(), ",")
	}
	out := make([]string, 0, len(values))
	for _, s := range values {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// NormalizeRaw is Normalize(ParseInput(raw)).
func NormalizeRaw(raw string) []string {
	return Normalize(ParseInput(raw))
}
