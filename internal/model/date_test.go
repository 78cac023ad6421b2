package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	expense := Expense{Date: NewDate(2024, time.January, 15)}

	data, err := json.Marshal(expense)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2024-01-15"`)

	var decoded Expense
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, expense.Date, decoded.Date)
}

func TestDate_RejectsMalformed(t *testing.T) {
	var d Date
	assert.Error(t, d.UnmarshalJSON([]byte(`"15/01/2024"`)))
	assert.Error(t, d.UnmarshalJSON([]byte(`"2024-13-40"`)))
}

func TestExpense_MonthKeyZeroPadded(t *testing.T) {
	e := Expense{Date: NewDate(2024, time.March, 5)}
	assert.Equal(t, "2024-03", e.MonthKey())

	e = Expense{Date: NewDate(2024, time.November, 30)}
	assert.Equal(t, "2024-11", e.MonthKey())
}
