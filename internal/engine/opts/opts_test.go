package opts

import (
	"math"
	"testing"

	"github.com/phyten/backrefx/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", "yes", "On"}
	falseVals := []string{"0", "false", "FALSE", "no", "OFF"}

	for _, tc := range trueVals {
		t.Run("true/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if !got {
				t.Fatalf("ParseBool(%q) = false, want true", tc)
			}
		})
	}

	for _, tc := range falseVals {
		t.Run("false/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if got {
				t.Fatalf("ParseBool(%q) = true, want false", tc)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("ParseBool should reject unknown values")
	}
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange("42", "jobs", 1, 64)
	if err != nil {
		t.Fatalf("ParseIntInRange error: %v", err)
	}
	if got != 42 {
		t.Fatalf("ParseIntInRange = %d, want 42", got)
	}

	if _, err := ParseIntInRange("-1", "truncate", 0, math.MinInt); err == nil {
		t.Fatal("ParseIntInRange should reject negative values when min=0")
	}

	if _, err := ParseIntInRange("65", "jobs", 1, 64); err == nil {
		t.Fatal("ParseIntInRange should reject values above max")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := Defaults()
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate error on defaults: %v", err)
	}

	for _, jobs := range []int{0, -1, 65, 1024} {
		bad := engine.Options{Jobs: jobs}
		if err := NormalizeAndValidate(&bad); err == nil {
			t.Fatalf("NormalizeAndValidate should fail for jobs=%d", jobs)
		}
	}
}

func TestNormalizeOutput(t *testing.T) {
	cases := map[string]string{
		"":         "tsv",
		"TSV":      "tsv",
		" table ":  "table",
		"json":     "json",
		"NDJSON":   "ndjson",
		"csv":      "csv",
		"md":       "markdown",
		"Markdown": "markdown",
	}
	for in, want := range cases {
		got, err := NormalizeOutput(in)
		if err != nil {
			t.Fatalf("NormalizeOutput(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeOutput(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := NormalizeOutput("yaml"); err == nil {
		t.Fatal("NormalizeOutput should reject unknown formats")
	}
}

func TestNormalizeRejectFile(t *testing.T) {
	if got := NormalizeRejectFile("  "); got != DefaultRejectFile {
		t.Fatalf("NormalizeRejectFile(blank) = %q", got)
	}
	if got := NormalizeRejectFile(" out/rej.txt "); got != "out/rej.txt" {
		t.Fatalf("NormalizeRejectFile = %q", got)
	}
}

func TestSplitMulti(t *testing.T) {
	vals := []string{"a,b", " c ", "", ",d"}
	got := SplitMulti(vals)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitMulti length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("SplitMulti mismatch at %d: got=%q want=%q", i, got[i], v)
		}
	}
}
