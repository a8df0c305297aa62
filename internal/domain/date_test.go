package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2026-10-15", Date{2026, time.October, 15}, false},
		{"2024-05-01T00:00:00.000Z", Date{2024, time.May, 1}, false},
		{" 2026-01-09 ", Date{2026, time.January, 9}, false},
		{"15/10/2026", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	now := time.Date(2026, time.December, 31, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		input   string
		want    string
		wantNil bool
		wantErr bool
	}{
		{"", "", true, false},
		{"none", "", true, false},
		{"today", "2026-12-31", false, false},
		{"Tomorrow", "2027-01-01", false, false},
		{"+3d", "2027-01-03", false, false},
		{"+0d", "2026-12-31", false, false},
		{"2027-02-14", "2027-02-14", false, false},
		{"+xd", "", false, true},
		{"-1d", "", false, true},
		{"someday", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDueDate(tt.input, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := Date{2026, time.March, 1}
	b := Date{2026, time.February, 28}

	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.True(t, b.Before(a))
	assert.True(t, a.Equal(Date{2026, time.March, 1}))
	assert.Equal(t, a, b.AddDays(1))
}

func TestDate_Display(t *testing.T) {
	now := time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Oct 20", Date{2026, time.October, 20}.Display(now))
	assert.Equal(t, "Jan 3, 2027", Date{2027, time.January, 3}.Display(now))
}

func TestDate_TextRoundTrip(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"dueDate"`
	}

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":"2024-05-01T00:00:00.000Z"}`), &w))
	require.NotNil(t, w.Due)
	assert.Equal(t, "2024-05-01", w.Due.String())

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dueDate":"2024-05-01"}`, string(out))

	var empty wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate":null}`), &empty))
	assert.Nil(t, empty.Due)
}
