package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/phyten/backrefx/internal/engine"
	"github.com/phyten/backrefx/internal/termcolor"
	"github.com/phyten/backrefx/internal/textutil"
)

const columnGap = "  "

// TableOptions controls the aligned terminal table.
type TableOptions struct {
	Palette termcolor.Palette
	// Truncate caps every column at this many display columns; 0 disables it.
	Truncate int
	// MaxCount is the backref count drawn fully red; 0 means 9.
	MaxCount int
}

// WriteTable renders accepted items as width-aligned columns.
func WriteTable(w io.Writer, items []engine.Item, sel FieldSelection, opts TableOptions) error {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, Headers(sel.Fields))
	for _, it := range items {
		if it.Accepted() {
			rows = append(rows, RowValues(it, sel.Fields))
		}
	}
	widths := textutil.ColumnWidths(rows, opts.Truncate)
	maxCount := float64(opts.MaxCount)
	if maxCount <= 0 {
		maxCount = 9
	}

	var b strings.Builder
	for r, row := range rows {
		b.Reset()
		for i, cell := range row {
			text := textutil.TruncateByWidth(cell, widths[i], "…")
			text = opts.Palette.Paint(cellStyle(r == 0, sel.Fields[i].Key, cell, opts.Palette, maxCount), text)
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(row)-1 {
				b.WriteString(text)
				continue
			}
			b.WriteString(textutil.PadRight(text, widths[i]))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func cellStyle(header bool, key, raw string, p termcolor.Palette, maxCount float64) termcolor.Style {
	if header {
		return termcolor.HeaderStyle()
	}
	switch key {
	case "backrefs":
		return termcolor.TokenStyle()
	case "backref_count":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return termcolor.Style{}
		}
		return termcolor.CountStyle(n, p.Profile, maxCount)
	default:
		return termcolor.Style{}
	}
}
