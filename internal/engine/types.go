package engine

import (
	"github.com/phyten/backrefx/internal/model"
	"github.com/phyten/backrefx/internal/progress"
)

// Item は入力 1 行の判定結果を表す
type Item struct {
	Line       int              `json:"line"`
	Raw        string           `json:"raw"`
	Pattern    string           `json:"pattern"`
	Sanitized  string           `json:"sanitized,omitempty"`
	Status     model.Status     `json:"status"`
	RejectKind model.RejectKind `json:"reject_kind,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	Backrefs   []model.Backref  `json:"backrefs,omitempty"`
	Groups     []model.Group    `json:"groups,omitempty"`
}

// Accepted reports whether the pattern passed every check.
func (it Item) Accepted() bool { return it.Status == model.StatusAccepted }

// JoinedBackrefs returns the backreference tokens separated by single spaces.
func (it Item) JoinedBackrefs() string { return model.JoinTokens(it.Backrefs) }

// JoinedGroups returns the capturing group texts, in closing order,
// separated by single spaces.
func (it Item) JoinedGroups() string { return model.JoinGroups(it.Groups) }

// Options は実行オプション
type Options struct {
	Jobs             int
	Progress         bool
	ProgressObserver progress.Observer `json:"-"`
}

// Result は出力
type Result struct {
	Items     []Item `json:"items"`
	Total     int    `json:"total"`
	Accepted  int    `json:"accepted"`
	Rejected  int    `json:"rejected"`
	Skipped   int    `json:"skipped"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// MaxBackrefs is the largest backreference count among accepted items.
func (r *Result) MaxBackrefs() int {
	most := 0
	for _, it := range r.AcceptedItems() {
		if n := len(it.Backrefs); n > most {
			most = n
		}
	}
	return most
}

// AcceptedItems returns the accepted items in input order.
func (r *Result) AcceptedItems() []Item {
	return r.filter(model.StatusAccepted)
}

// RejectedItems returns the rejected items in input order.
func (r *Result) RejectedItems() []Item {
	return r.filter(model.StatusRejected)
}

func (r *Result) filter(status model.Status) []Item {
	if r == nil {
		return nil
	}
	out := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}
