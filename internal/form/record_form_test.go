package form

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	f := RecordForm{
		Date:     "2024-05-01",
		Exercise: "ベンチプレス",
		Sets:     "3",
		Weight:   "60",
		Reps:     "10",
		Memo:     "フォーム良し",
	}

	rec, errs := f.Validate()
	require.Nil(t, errs)
	require.NotNil(t, rec)

	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, "ベンチプレス", rec.Exercise)
	assert.Equal(t, 3, rec.Sets)
	require.NotNil(t, rec.Weight)
	assert.Equal(t, 60.0, *rec.Weight)
	require.NotNil(t, rec.Reps)
	assert.Equal(t, 10, *rec.Reps)
	assert.Equal(t, "フォーム良し", rec.Memo)
}

func TestValidateAllowsMissingOptionalFields(t *testing.T) {
	f := RecordForm{
		Date:     "2024-05-01",
		Exercise: "スクワット",
		Sets:     "5",
	}

	rec, errs := f.Validate()
	require.Nil(t, errs)
	assert.Nil(t, rec.Weight)
	assert.Nil(t, rec.Reps)
	assert.Empty(t, rec.Memo)
}

func TestValidateAcceptsZeroWeight(t *testing.T) {
	// 自重トレーニングは重量 0 で記録できる
	f := RecordForm{
		Date:     "2024-05-01",
		Exercise: "懸垂",
		Sets:     "3",
		Weight:   "0",
	}

	rec, errs := f.Validate()
	require.Nil(t, errs)
	require.NotNil(t, rec.Weight)
	assert.Equal(t, 0.0, *rec.Weight)
}

func TestValidateRejectsMissingRequiredFields(t *testing.T) {
	f := RecordForm{}

	rec, errs := f.Validate()
	assert.Nil(t, rec)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "exercise")
	assert.Contains(t, errs, "sets")
	assert.NotContains(t, errs, "weight")
	assert.NotContains(t, errs, "reps")
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		form  RecordForm
		field string
	}{
		{"不正な日付", RecordForm{Date: "2024/05/01", Exercise: "x", Sets: "3"}, "date"},
		{"存在しない日付", RecordForm{Date: "2024-13-40", Exercise: "x", Sets: "3"}, "date"},
		{"種目が長すぎる", RecordForm{Date: "2024-05-01", Exercise: strings.Repeat("あ", 101), Sets: "3"}, "exercise"},
		{"セット数が整数でない", RecordForm{Date: "2024-05-01", Exercise: "x", Sets: "3.5"}, "sets"},
		{"セット数が0", RecordForm{Date: "2024-05-01", Exercise: "x", Sets: "0"}, "sets"},
		{"重量が数値でない", RecordForm{Date: "2024-05-01", Exercise: "x", Sets: "3", Weight: "重い"}, "weight"},
		{"重量が負", RecordForm{Date: "2024-05-01", Exercise: "x", Sets: "3", Weight: "-1"}, "weight"},
		{"レップ数が整数でない", RecordForm{Date: "2024-05-01", Exercise: "x", Sets: "3", Reps: "abc"}, "reps"},
		{"レップ数が0", RecordForm{Date: "2024-05-01", Exercise: "x", Sets: "3", Reps: "0"}, "reps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, errs := tt.form.Validate()
			assert.Nil(t, rec)
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidateExerciseBoundary(t *testing.T) {
	// 100 文字ちょうどは受理する (境界)
	f := RecordForm{Date: "2024-05-01", Exercise: strings.Repeat("あ", 100), Sets: "1"}
	rec, errs := f.Validate()
	require.Nil(t, errs)
	assert.Len(t, []rune(rec.Exercise), 100)
}
