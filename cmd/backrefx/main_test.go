package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phyten/backrefx/internal/engine"
)

const sampleInput = "(a)(b)\\2\tfoo  \n" +
	"(a)\\2\tbar\n" +
	"abc\tbaz\n" +
	"no tab here\n" +
	"((x)\\1\tqux\n" +
	"(?:a)(b)\\1\tquux\n"

type testEnv struct {
	dir     string
	input   string
	rejects string
	env     map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "patterns.tsv")
	if err := os.WriteFile(input, []byte(sampleInput), 0o644); err != nil {
		t.Fatalf("入力ファイルの作成に失敗しました: %v", err)
	}
	home := t.TempDir()
	return &testEnv{
		dir:     dir,
		input:   input,
		rejects: filepath.Join(dir, "rejected.txt"),
		env:     map[string]string{"HOME": home, "XDG_CONFIG_HOME": home},
	}
}

func (e *testEnv) getenv(key string) string { return e.env[key] }

func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--no-progress", "--reject-file", e.rejects}, args...)
	full = append(full, e.input)
	err := scanCmd(full, e.getenv, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestScanCmdは受理行と棄却ファイルを書き出す(t *testing.T) {
	e := newTestEnv(t)
	stdout, _, err := e.run(t)
	if err != nil {
		t.Fatalf("scanCmd に失敗しました: %v", err)
	}
	wantOut := "(a)(b)\\2\tfoo\t\\2\t(a) (b)\n" +
		"(?:a)(b)\\1\tquux\t\\1\t(b)\n"
	if diff := cmp.Diff(wantOut, stdout); diff != "" {
		t.Fatalf("標準出力が想定外です (-want +got):\n%s", diff)
	}

	rejected, err := os.ReadFile(e.rejects)
	if err != nil {
		t.Fatalf("棄却ファイルを読めません: %v", err)
	}
	wantRejects := "(a)\\2\tBackreference \\2 in regex (a)\\2 refers to non-existent group 2\n" +
		"abc\tNo backreferences found\n" +
		"((x)\\1\tUnmatched opening parenthesis @ 0 in regex=((x)\\1\n"
	if diff := cmp.Diff(wantRejects, string(rejected)); diff != "" {
		t.Fatalf("棄却ファイルが想定外です (-want +got):\n%s", diff)
	}
}

func TestScanCmdは棄却ファイルを毎回切り詰める(t *testing.T) {
	e := newTestEnv(t)
	if err := os.WriteFile(e.rejects, []byte("stale\tline\n"), 0o644); err != nil {
		t.Fatalf("棄却ファイルの準備に失敗しました: %v", err)
	}
	if _, _, err := e.run(t); err != nil {
		t.Fatalf("scanCmd に失敗しました: %v", err)
	}
	data, err := os.ReadFile(e.rejects)
	if err != nil {
		t.Fatalf("棄却ファイルを読めません: %v", err)
	}
	if strings.Contains(string(data), "stale") {
		t.Fatalf("古い内容が残っています: %q", data)
	}
}

func TestScanCmdは設定ファイルと環境変数とフラグを重ねる(t *testing.T) {
	e := newTestEnv(t)
	cfgPath := filepath.Join(e.dir, ".backrefx.yaml")
	if err := os.WriteFile(cfgPath, []byte("output: json\njobs: 2\n"), 0o644); err != nil {
		t.Fatalf("設定ファイルの作成に失敗しました: %v", err)
	}

	stdout, _, err := e.run(t)
	if err != nil {
		t.Fatalf("scanCmd に失敗しました: %v", err)
	}
	var res engine.Result
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("設定ファイルの output=json が効いていません: %v\n%s", err, stdout)
	}
	if res.Accepted != 2 || res.Rejected != 3 || res.Skipped != 1 {
		t.Fatalf("件数が想定外です: %+v", res)
	}

	e.env["BACKREFX_OUTPUT"] = "csv"
	stdout, _, err = e.run(t, "--fields", "line,backref_count")
	if err != nil {
		t.Fatalf("scanCmd に失敗しました: %v", err)
	}
	if want := "LINE,BACKREF_COUNT\r\n1,1\r\n6,1\r\n"; stdout != want {
		t.Fatalf("環境変数の output=csv が効いていません: %q", stdout)
	}

	stdout, _, err = e.run(t, "-o", "ndjson")
	if err != nil {
		t.Fatalf("scanCmd に失敗しました: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(stdout), "\n"); len(lines) != 2 || !json.Valid([]byte(lines[0])) {
		t.Fatalf("フラグの -o ndjson が効いていません: %q", stdout)
	}
}

func TestScanCmdは詳細表示で要約を出す(t *testing.T) {
	e := newTestEnv(t)
	_, stderr, err := e.run(t, "-v")
	if err != nil {
		t.Fatalf("scanCmd に失敗しました: %v", err)
	}
	for _, want := range []string{"total=5", "accepted=2", "rejected=3", "skipped=1"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("要約に %s が含まれていません: %q", want, stderr)
		}
	}
}

func TestScanCmdは不正な値を使い方エラーにする(t *testing.T) {
	cases := map[string][]string{
		"output":   {"--output", "xml"},
		"jobs":     {"--jobs", "0"},
		"fields":   {"--fields", "nope"},
		"color":    {"--color", "rainbow"},
		"truncate": {"--truncate", "-1"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEnv(t)
			_, _, err := e.run(t, args...)
			if err == nil || !isUsageError(err) {
				t.Fatalf("使い方エラーを期待しました: %v", err)
			}
		})
	}

	e := newTestEnv(t)
	e.env["BACKREFX_JOBS"] = "lots"
	if _, _, err := e.run(t); err == nil || !isUsageError(err) {
		t.Fatalf("環境変数の不正値は使い方エラーになるべきです: %v", err)
	}
}

func TestScanCmdは入力ファイルが無いとエラーを返す(t *testing.T) {
	e := newTestEnv(t)
	e.input = filepath.Join(e.dir, "missing.tsv")
	_, _, err := e.run(t)
	if err == nil || isUsageError(err) {
		t.Fatalf("I/O エラーを期待しました: %v", err)
	}
}

func TestParseScanArgsShortAliases(t *testing.T) {
	cfg, err := parseScanArgs([]string{"-o", "table", "-j", "3", "-r", "bad.txt", "-c", "x.toml", "-v", "in.tsv"})
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.input != "in.tsv" || cfg.configPath != "x.toml" || !cfg.verbose {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.flagLayer.UI.Output == nil || *cfg.flagLayer.UI.Output != "table" {
		t.Fatalf("output mismatch: %+v", cfg.flagLayer.UI.Output)
	}
	if cfg.flagLayer.Engine.Jobs == nil || *cfg.flagLayer.Engine.Jobs != 3 {
		t.Fatalf("jobs mismatch: %+v", cfg.flagLayer.Engine.Jobs)
	}
	if cfg.flagLayer.Engine.RejectFile == nil || *cfg.flagLayer.Engine.RejectFile != "bad.txt" {
		t.Fatalf("reject file mismatch: %+v", cfg.flagLayer.Engine.RejectFile)
	}
}

func TestParseScanArgsLeavesUnsetFlagsNil(t *testing.T) {
	cfg, err := parseScanArgs([]string{"in.tsv"})
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if cfg.flagLayer.UI.Output != nil || cfg.flagLayer.UI.Color != nil || cfg.flagLayer.Engine.Jobs != nil {
		t.Fatalf("unset flags must not override lower layers: %+v", cfg.flagLayer)
	}
}

func TestParseScanArgsErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"a.tsv", "b.tsv"},
		{"--progress", "--no-progress", "a.tsv"},
		{"--unknown", "a.tsv"},
	}
	for _, args := range cases {
		if _, err := parseScanArgs(args); err == nil || !isUsageError(err) {
			t.Fatalf("parseScanArgs(%q) should fail with a usage error: %v", args, err)
		}
	}
}

func TestParseScanArgsHelp(t *testing.T) {
	cfg, err := parseScanArgs([]string{"-h"})
	if err != nil {
		t.Fatalf("parseScanArgs failed: %v", err)
	}
	if !cfg.showHelp {
		t.Fatal("showHelp should be true")
	}
	var buf bytes.Buffer
	printUsage(&buf)
	if !strings.Contains(buf.String(), "-reject-file") || !strings.Contains(buf.String(), "totsv") {
		t.Fatalf("usage is missing flags: %s", buf.String())
	}
}

func TestTotsvCmdは値をタブ区切りで出力する(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.jsonl")
	content := "{\"b\": \"x\", \"a\": 1}\n{broken\n{\"t\": \"a\\tb\", \"k\": false}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("入力ファイルの作成に失敗しました: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if err := totsvCmd([]string{"-v", path}, &stdout, &stderr); err != nil {
		t.Fatalf("totsvCmd に失敗しました: %v", err)
	}
	want := "x\t1\nError: undecodable line\nfalse\n"
	if diff := cmp.Diff(want, stdout.String()); diff != "" {
		t.Fatalf("出力が想定外です (-want +got):\n%s", diff)
	}
	if !strings.Contains(stderr.String(), "undecodable=1") {
		t.Fatalf("要約が想定外です: %q", stderr.String())
	}
	if err := totsvCmd(nil, &stdout, &stderr); err == nil || !isUsageError(err) {
		t.Fatalf("引数なしは使い方エラーになるべきです: %v", err)
	}
}
