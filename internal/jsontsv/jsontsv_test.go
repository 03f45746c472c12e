package jsontsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertKeepsKeyOrder(t *testing.T) {
	in := `{"z": "last?", "a": 1, "m": true}` + "\n" +
		`{"b": null, "a": 2.50, "c": [1, {"d": "e"}], "e": {"x": 1}}` + "\n"
	var out bytes.Buffer
	st, err := Convert(strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := "last?\t1\ttrue\n" +
		"null\t2.50\t[1,{\"d\":\"e\"}]\t{\"x\":1}\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if st.Lines != 2 || st.Converted != 2 || st.Undecodable != 0 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestConvertOmitsValuesWithTabOrNewline(t *testing.T) {
	in := `{"a": "x\ty", "b": "keep", "c": "multi\nline", "d": "plain"}`
	var out bytes.Buffer
	st, err := Convert(strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got := out.String(); got != "keep\tplain\n" {
		t.Fatalf("got %q", got)
	}
	if st.Omitted != 2 {
		t.Fatalf("Omitted=%d want=2", st.Omitted)
	}
}

func TestConvertContinuesAfterBadLines(t *testing.T) {
	in := "{\"a\": 1}\n" +
		"\xff\xfe{\"a\": 2}\n" +
		"not json\n" +
		"[1, 2]\n" +
		"{\"a\": 3} trailing\n" +
		"\n" +
		"{\"a\": 4}"
	var out bytes.Buffer
	st, err := Convert(strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := "1\n" +
		ErrorMarker + "\n" +
		ErrorMarker + "\n" +
		ErrorMarker + "\n" +
		ErrorMarker + "\n" +
		"4\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if st.Undecodable != 4 || st.Blank != 1 || st.Converted != 2 || st.Lines != 7 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestConvertEmptyObjectWritesEmptyLine(t *testing.T) {
	var out bytes.Buffer
	if _, err := Convert(strings.NewReader("{}\r\n"), &out); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got := out.String(); got != "\n" {
		t.Fatalf("got %q", got)
	}
}

func TestValuesUnicode(t *testing.T) {
	values, omitted, err := Values(`{"pattern": "(あ)\\1", "n": -0}`)
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if diff := cmp.Diff([]string{`(あ)\1`, "-0"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if omitted != 0 {
		t.Fatalf("omitted=%d", omitted)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestConvertReturnsReadErrors(t *testing.T) {
	if _, err := Convert(failingReader{}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected read error")
	}
}

func TestValuesRepeatedKeyTakesLastValueAtFirstPosition(t *testing.T) {
	got, omitted, err := Values(`{"a": "1", "b": "x", "a": "2"}`)
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if diff := cmp.Diff([]string{"2", "x"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if omitted != 0 {
		t.Fatalf("omitted=%d want=0", omitted)
	}

	// the last value decides whether the key is dropped
	got, omitted, err = Values(`{"a": "ok", "b": "x", "a": "tab\there"}`)
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if diff := cmp.Diff([]string{"x"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if omitted != 1 {
		t.Fatalf("omitted=%d want=1", omitted)
	}
	got, _, err = Values(`{"a": "tab\there", "a": "ok"}`)
	if err != nil {
		t.Fatalf("Values failed: %v", err)
	}
	if diff := cmp.Diff([]string{"ok"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}
