// Package form は利用者から送信されたフォーム値の検証を担当する。
package form

import (
	"strconv"
	"strings"
	"time"
)

// dateLayout は日付フィールドの受理形式 (ISO-8601)。
const dateLayout = "2006-01-02"

// RecordForm はトレーニング記録フォームの生の送信値を保持する。
// 検証に失敗した場合、呼び出し側はこの値をそのまま画面へ戻して入力を保持する。
type RecordForm struct {
	Date     string `form:"date" json:"date"`
	Exercise string `form:"exercise" json:"exercise"`
	Sets     string `form:"sets" json:"sets"`
	Weight   string `form:"weight" json:"weight"`
	Reps     string `form:"reps" json:"reps"`
	Memo     string `form:"memo" json:"memo"`
}

// Record は検証を通過したトレーニング記録。
// Weight と Reps は任意項目のためポインタで「未入力」を表す。
type Record struct {
	Date     time.Time
	Exercise string
	Sets     int
	Weight   *float64
	Reps     *int
	Memo     string
}

// Validate はフォーム値を検証し、検証済みの記録か項目別のエラーメッセージの
// どちらか一方だけを返す。外部への副作用はない。
func (f *RecordForm) Validate() (*Record, map[string]string) {
	errs := make(map[string]string)
	rec := &Record{Memo: strings.TrimSpace(f.Memo)}

	// date: 必須、カレンダー上の日付として解釈できること
	dateStr := strings.TrimSpace(f.Date)
	if dateStr == "" {
		errs["date"] = "日付を入力してください。"
	} else if d, err := time.Parse(dateLayout, dateStr); err != nil {
		errs["date"] = "正しい日付を入力してください。"
	} else {
		rec.Date = d
	}

	// exercise: 必須、1〜100 文字
	exercise := strings.TrimSpace(f.Exercise)
	if exercise == "" {
		errs["exercise"] = "トレーニング種目を入力してください。"
	} else if len([]rune(exercise)) > 100 {
		errs["exercise"] = "トレーニング種目は100文字以内で入力してください。"
	} else {
		rec.Exercise = exercise
	}

	// sets: 必須、1 以上の整数
	setsStr := strings.TrimSpace(f.Sets)
	if setsStr == "" {
		errs["sets"] = "セット数を入力してください。"
	} else if sets, err := strconv.Atoi(setsStr); err != nil {
		errs["sets"] = "セット数は整数で入力してください。"
	} else if sets < 1 {
		errs["sets"] = "セット数は1以上で入力してください。"
	} else {
		rec.Sets = sets
	}

	// weight: 任意、入力された場合は 0 以上の数値
	if weightStr := strings.TrimSpace(f.Weight); weightStr != "" {
		if weight, err := strconv.ParseFloat(weightStr, 64); err != nil {
			errs["weight"] = "重量は数値で入力してください。"
		} else if weight < 0 {
			errs["weight"] = "重量は0以上で入力してください。"
		} else {
			rec.Weight = &weight
		}
	}

	// reps: 任意、入力された場合は 1 以上の整数
	if repsStr := strings.TrimSpace(f.Reps); repsStr != "" {
		if reps, err := strconv.Atoi(repsStr); err != nil {
			errs["reps"] = "レップ数は整数で入力してください。"
		} else if reps < 1 {
			errs["reps"] = "レップ数は1以上で入力してください。"
		} else {
			rec.Reps = &reps
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rec, nil
}
