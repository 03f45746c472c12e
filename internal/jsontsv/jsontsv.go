// Package jsontsv flattens JSON Lines into tab separated values, one output
// line per object, keeping the object's own key order.
package jsontsv

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrorMarker is written in place of a line that cannot be decoded.
const ErrorMarker = "Error: undecodable line"

var errNotObject = errors.New("not a JSON object")

// Stats counts what Convert did with its input.
type Stats struct {
	Lines       int
	Converted   int
	Undecodable int
	Blank       int
	// Omitted counts values dropped because they contained a tab or newline.
	Omitted int
}

// Convert reads one JSON object per line from r and writes the object's
// values joined by tabs to w. Only read and write failures are returned;
// a bad line produces ErrorMarker and processing continues.
func Convert(r io.Reader, w io.Writer) (Stats, error) {
	var st Stats
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return st, readErr
		}
		if line != "" {
			st.Lines++
			if err := convertLine(bw, line, &st); err != nil {
				return st, err
			}
		}
		if readErr != nil {
			break
		}
	}
	return st, bw.Flush()
}

func convertLine(w *bufio.Writer, line string, st *Stats) error {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		st.Blank++
		return nil
	}
	if !utf8.ValidString(line) {
		st.Undecodable++
		_, err := w.WriteString(ErrorMarker + "\n")
		return err
	}
	values, omitted, err := Values(line)
	if err != nil {
		st.Undecodable++
		_, werr := w.WriteString(ErrorMarker + "\n")
		return werr
	}
	st.Converted++
	st.Omitted += omitted
	_, err = w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Values decodes a single JSON object and returns its rendered values in
// key order, without those containing a tab or newline. A repeated key
// keeps its first position and takes the last value. The second result is
// the number of values left out.
func Values(line string) ([]string, int, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, 0, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, 0, errNotObject
	}
	var (
		rendered []string
		slot     = make(map[string]int)
	)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, 0, err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, 0, err
		}
		s, err := render(raw)
		if err != nil {
			return nil, 0, err
		}
		if i, seen := slot[key]; seen {
			rendered[i] = s
			continue
		}
		slot[key] = len(rendered)
		rendered = append(rendered, s)
	}
	if _, err := dec.Token(); err != nil {
		return nil, 0, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("trailing data after object")
	}
	values := make([]string, 0, len(rendered))
	for _, s := range rendered {
		if strings.ContainsAny(s, "\t\n") {
			continue
		}
		values = append(values, s)
	}
	return values, len(rendered) - len(values), nil
}

// render turns one JSON value into its text form: strings unquoted, other
// scalars as written, arrays and objects compacted.
func render(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errors.New("empty value")
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return string(raw), nil
	}
}
