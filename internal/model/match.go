package model

import "strings"

// Status は 1 行の処理結果を表します。
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// RejectKind は棄却理由の分類です。
type RejectKind string

const (
	RejectNone       RejectKind = ""
	RejectNoBackrefs RejectKind = "no_backrefs"
	RejectStructural RejectKind = "structural"
	RejectValidation RejectKind = "validation"
	RejectSanitize   RejectKind = "sanitize"
	RejectUnknown    RejectKind = "unknown"
)

// Group は括弧で囲まれた捕獲グループ 1 件を表します。
// Start/End はサニタイズ後パターン上のバイトオフセット (End は閉じ括弧の直後) です。
type Group struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Backref は "\N" 形式の後方参照トークン 1 件を表します。
type Backref struct {
	Token  string `json:"token"`
	Index  int    `json:"index"`
	Offset int    `json:"offset"`
}

// JoinTokens は後方参照トークンを半角スペース区切りで連結します。
func JoinTokens(backrefs []Backref) string {
	parts := make([]string, len(backrefs))
	for i, br := range backrefs {
		parts[i] = br.Token
	}
	return strings.Join(parts, " ")
}

// JoinGroups は捕獲グループの文字列を閉じ括弧順に半角スペース区切りで連結します。
func JoinGroups(groups []Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = g.Text
	}
	return strings.Join(parts, " ")
}
