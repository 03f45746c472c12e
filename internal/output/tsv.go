package output

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/phyten/backrefx/internal/engine"
)

// WriteAccepted writes one line per accepted item:
// the input line without trailing whitespace, a tab, the backreference
// tokens, a tab, the capturing group texts. Rejected items are ignored.
func WriteAccepted(w io.Writer, items []engine.Item) error {
	bw := bufio.NewWriter(w)
	for _, it := range items {
		if !it.Accepted() {
			continue
		}
		line := strings.TrimRightFunc(it.Raw, unicode.IsSpace)
		if _, err := bw.WriteString(line + "\t" + it.JoinedBackrefs() + "\t" + it.JoinedGroups() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRejects writes "<pattern>\t<reason>" for every rejected item.
func WriteRejects(w io.Writer, items []engine.Item) error {
	bw := bufio.NewWriter(w)
	for _, it := range items {
		if it.Accepted() {
			continue
		}
		if _, err := bw.WriteString(it.Pattern + "\t" + it.Reason + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
