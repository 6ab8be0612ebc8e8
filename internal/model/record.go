// Package model はアプリのデータモデル定義を含む。
package model

import "encoding/json"

// Cell は外部スプレッドシートから返る緩い型のセル値を表す。
// シート側では数値・文字列・空欄が混在するため、JSON の文字列と数値の
// どちらで届いてもリテラルをそのまま文字列として保持する。
// 空文字列は「セルに値がない」ことを意味し、表示時には項目ごと省略する。
type Cell string

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Cell) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*c = Cell(s)
		return nil
	}
	if string(b) == "null" {
		*c = ""
		return nil
	}
	// 数値などは届いたリテラル表記をそのまま使う
	*c = Cell(string(b))
	return nil
}

// String は保持しているセル値を返す。
func (c Cell) String() string {
	return string(c)
}

// IsEmpty はセルに値がないことを報告する。
func (c Cell) IsEmpty() bool {
	return c == ""
}

// TrainingRecord は外部スプレッドシートが保持する 1 件のトレーニング記録を表す。
// このアプリ自身は記録を永続化しない。取得した応答を表示用に持ち回るだけであり、
// すべての項目は欠けている可能性がある。
type TrainingRecord struct {
	User     Cell `json:"user,omitempty"`
	Date     Cell `json:"date,omitempty"`
	Exercise Cell `json:"exercise,omitempty"`
	Sets     Cell `json:"sets,omitempty"`
	Weight   Cell `json:"weight,omitempty"`
	Reps     Cell `json:"reps,omitempty"`
	Memo     Cell `json:"memo,omitempty"`
}
