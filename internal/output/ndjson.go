package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/backrefx/internal/engine"
)

// WriteNDJSON streams accepted items as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, items []engine.Item) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if !it.Accepted() {
			continue
		}
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the whole result, rejects included, as one indented
// document.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
