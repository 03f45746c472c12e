package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/phyten/backrefx/internal/model"
	"github.com/phyten/backrefx/internal/progress"
	"github.com/phyten/backrefx/internal/regexscan"
)

type record struct {
	line    int
	raw     string
	pattern string
}

// Run は入力を 1 行ずつパターンとして判定し、入力順を保った Result を返します。
//
// パターンごとの失敗は Item.Reason に記録されるだけで処理は継続します。
// エラーが返るのは入力の読み込みに失敗した場合と ctx がキャンセルされた場合のみです。
func Run(ctx context.Context, opts Options, src io.Reader) (*Result, error) {
	start := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}

	records, skipped, err := readRecords(src)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Result{Skipped: skipped, ElapsedMS: msSince(start)}, nil
	}

	out := make([]Item, len(records))
	var est *progress.Estimator
	observer := opts.ProgressObserver
	if opts.Progress && observer != nil {
		est = progress.NewEstimator(len(records), progress.Config{})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// worker pool
	type job struct {
		idx int
		rec record
	}
	jobs := make(chan job)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			out[j.idx] = processOne(j.rec)
			if est != nil {
				if snap, notify := est.Advance(1); notify {
					observer.Publish(snap)
				}
			}
		}
	}

	nw := opts.Jobs
	if nw > len(records) {
		nw = len(records)
	}
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
feed:
	for i, rec := range records {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, rec: rec}:
		}
	}
	close(jobs)
	wg.Wait()
	if est != nil {
		observer.Done(est.Complete())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Items:   out,
		Total:   len(out),
		Skipped: skipped,
	}
	for _, it := range out {
		if it.Accepted() {
			res.Accepted++
		} else {
			res.Rejected++
		}
	}
	res.ElapsedMS = msSince(start)
	return res, nil
}

// readRecords splits src on '\n' keeping the terminator in the first field,
// so a line without a tab carries the newline in its pattern and is skipped.
func readRecords(src io.Reader) ([]record, int, error) {
	if src == nil {
		return nil, 0, errors.New("engine: nil input")
	}
	br := bufio.NewReaderSize(src, 64*1024)
	var (
		records []record
		skipped int
		lineNo  int
	)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineNo++
			if rec, ok := parseRecord(lineNo, line); ok {
				records = append(records, rec)
			} else {
				skipped++
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read input: %w", err)
		}
	}
	return records, skipped, nil
}

func parseRecord(lineNo int, line string) (record, bool) {
	pattern, _, _ := strings.Cut(line, "\t")
	if strings.Contains(pattern, "\n") {
		return record{}, false
	}
	return record{
		line:    lineNo,
		raw:     strings.TrimSuffix(line, "\n"),
		pattern: pattern,
	}, true
}

func processOne(rec record) Item {
	it := Item{
		Line:    rec.line,
		Raw:     rec.raw,
		Pattern: rec.pattern,
	}
	a, err := regexscan.Analyze(rec.pattern)
	it.Sanitized = a.Sanitized
	it.Backrefs = a.Backrefs
	if err != nil {
		it.Status = model.StatusRejected
		it.RejectKind = regexscan.Classify(err)
		it.Reason = reasonOf(err)
		return it
	}
	it.Status = model.StatusAccepted
	it.Groups = a.Groups
	return it
}

// reasonOf keeps the reject file one line per pattern.
func reasonOf(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "unknown error"
	}
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(msg)
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
