package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phyten/backrefx/internal/engine"
)

type Field struct {
	Key    string
	Header string
}

type FieldSelection struct {
	Fields []Field
}

var fieldRegistry = map[string]string{
	"line":          "LINE",
	"pattern":       "PATTERN",
	"backrefs":      "BACKREFS",
	"groups":        "GROUPS",
	"group_count":   "GROUP_COUNT",
	"backref_count": "BACKREF_COUNT",
	"sanitized":     "SANITIZED",
}

var defaultFields = []string{"line", "pattern", "backrefs", "groups"}

// ResolveFields parses a comma separated field list. An empty list selects
// line, pattern, backrefs and groups.
func ResolveFields(raw string) (FieldSelection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		sel := FieldSelection{Fields: make([]Field, 0, len(defaultFields))}
		for _, key := range defaultFields {
			sel.Fields = append(sel.Fields, Field{Key: key, Header: fieldRegistry[key]})
		}
		return sel, nil
	}

	parts := strings.Split(raw, ",")
	sel := FieldSelection{Fields: make([]Field, 0, len(parts))}
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return FieldSelection{}, fmt.Errorf("invalid fields: empty entry")
		}
		key := strings.ReplaceAll(strings.ToLower(name), "-", "_")
		header, ok := fieldRegistry[key]
		if !ok {
			return FieldSelection{}, fmt.Errorf("unknown field: %s", name)
		}
		sel.Fields = append(sel.Fields, Field{Key: key, Header: header})
	}
	return sel, nil
}

func Headers(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Header
	}
	return out
}

func RowValues(it engine.Item, fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = formatFieldValue(it, f.Key)
	}
	return out
}

func formatFieldValue(it engine.Item, key string) string {
	switch key {
	case "line":
		return strconv.Itoa(it.Line)
	case "pattern":
		return it.Pattern
	case "backrefs":
		return it.JoinedBackrefs()
	case "groups":
		return it.JoinedGroups()
	case "group_count":
		return strconv.Itoa(len(it.Groups))
	case "backref_count":
		return strconv.Itoa(len(it.Backrefs))
	case "sanitized":
		return it.Sanitized
	default:
		return ""
	}
}
