package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name string
		ref  time.Time
		want string
	}{
		{"thursday", time.Date(2024, 6, 13, 15, 42, 7, 99, time.UTC), "2024-06-09"},
		{"sunday is its own start", time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC), "2024-06-09"},
		{"saturday", time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC), "2024-06-09"},
		{"crosses month", time.Date(2024, 7, 2, 12, 0, 0, 0, time.UTC), "2024-06-30"},
		{"crosses year", time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), "2024-12-29"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfWeek(tc.ref)
			assert.Equal(t, tc.want, ISODateOnly(got))
			assert.Equal(t, time.Sunday, got.Weekday())
			assert.Zero(t, got.Hour())
			assert.Zero(t, got.Minute())
			assert.Zero(t, got.Second())
			assert.Zero(t, got.Nanosecond())
		})
	}
}

func TestStartOfWeekKeepsLocation(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	ref := time.Date(2024, 6, 13, 0, 30, 0, 0, shanghai)

	got := StartOfWeek(ref)

	assert.Equal(t, shanghai, got.Location())
	assert.Equal(t, "2024-06-09", ISODateOnly(got))
}

func TestISODateOnlyUsesLocalCalendarDate(t *testing.T) {
	// 东八区凌晨，对应 UTC 仍是前一天
	shanghai := time.FixedZone("CST", 8*3600)
	early := time.Date(2024, 6, 13, 0, 30, 0, 0, shanghai)
	assert.Equal(t, "2024-06-13", ISODateOnly(early))
	assert.Equal(t, "2024-06-12", ISODateOnly(early.UTC()))

	// 西五区深夜，对应 UTC 已是第二天
	newYork := time.FixedZone("EST", -5*3600)
	late := time.Date(2024, 6, 13, 23, 30, 0, 0, newYork)
	assert.Equal(t, "2024-06-13", ISODateOnly(late))
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2024, 6, 13, 17, 5, 3, 1, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC), got)
}
