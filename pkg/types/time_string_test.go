package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", in: "08:30", want: "08:30"},
		{name: "postgres time", in: "22:00:00", want: "22:00"},
		{name: "end of day", in: "24:00", want: "24:00"},
		{name: "spaces", in: " 12:00 ", want: "12:00"},
		{name: "bad hour", in: "25:00", wantErr: true},
		{name: "bad minute", in: "10:60", wantErr: true},
		{name: "no separator", in: "1000", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, MustTimeString("08:00").IsBefore("08:01"))
	assert.False(t, MustTimeString("08:00").IsBefore("08:00"))
	assert.True(t, MustTimeString("13:00").IsAfter("12:59"))
	assert.Equal(t, 8*60+30, MustTimeString("08:30").Minutes())
}

func TestTimeString_On(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2025, 3, 10, 17, 45, 12, 0, loc)

	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, loc), MustTimeString("09:30").On(date))
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, loc), MustTimeString("24:00").On(date))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("13:00:00")))
	assert.Equal(t, TimeString("13:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.Equal(t, TimeString(""), ts)

	assert.Error(t, ts.Scan(42))
}
