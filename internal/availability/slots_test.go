package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var storeLoc = time.FixedZone("BRT", -3*60*60)

func salonConfig() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		StoreID:             "salon-1",
		OpenTime:            "08:00",
		CloseTime:           "18:00",
		LunchStart:          "12:00",
		LunchEnd:            "13:00",
		SlotIntervalMinutes: 30,
		NonWorkingDays:      map[string]struct{}{},
	}
}

func at(day int, hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(time.Date(2025, 3, day, 0, 0, 0, 0, storeLoc))
}

func starts(slots []domain.Slot, onlyAvailable bool) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		if onlyAvailable && !s.Available {
			continue
		}
		out = append(out, s.Start.Format(domain.TimeFormat))
	}
	return out
}

func TestGenerateSlots_FullDayWithLunch(t *testing.T) {
	date := at(10, "00:00")
	now := at(10, "07:00")

	slots := GenerateSlots(salonConfig(), date, nil, now)

	require.Len(t, slots, 20)
	assert.Equal(t, []string{
		"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
	}, starts(slots, true))

	assert.False(t, slots[8].Available, "12:00 overlaps lunch")
	assert.False(t, slots[9].Available, "12:30 overlaps lunch")
	assert.Equal(t, at(10, "18:00"), slots[len(slots)-1].End)
}

func TestGenerateSlots_BusyIntervalMarksSlot(t *testing.T) {
	date := at(10, "00:00")
	now := at(9, "20:00")
	busy := []domain.BusyInterval{{Start: at(10, "10:00"), End: at(10, "10:30")}}

	slots := GenerateSlots(salonConfig(), date, busy, now)

	require.Len(t, slots, 20)
	assert.Len(t, starts(slots, true), 17)
	for _, s := range slots {
		switch s.Start.Format(domain.TimeFormat) {
		case "10:00":
			assert.False(t, s.Available)
		case "09:30", "10:30":
			assert.True(t, s.Available, "touching boundaries are not overlaps")
		}
	}
}

func TestGenerateSlots_NonWorkingDay(t *testing.T) {
	cfg := salonConfig()
	cfg.NonWorkingDays["2025-03-10"] = struct{}{}
	busy := []domain.BusyInterval{{Start: at(10, "09:00"), End: at(10, "10:00")}}

	assert.Empty(t, GenerateSlots(cfg, at(10, "00:00"), busy, at(9, "10:00")))
	assert.Empty(t, GenerateSlots(cfg, at(10, "00:00"), nil, at(10, "09:15")))
	assert.NotEmpty(t, GenerateSlots(cfg, at(11, "00:00"), nil, at(9, "10:00")))
}

func TestGenerateSlots_TodayRoundsUpToGrid(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantFirst string
		wantCount int
	}{
		{name: "between boundaries", now: at(10, "09:15"), wantFirst: "09:30", wantCount: 17},
		{name: "on boundary", now: at(10, "09:30"), wantFirst: "09:30", wantCount: 17},
		{name: "seconds past boundary", now: at(10, "09:30").Add(time.Second), wantFirst: "10:00", wantCount: 16},
		{name: "before opening", now: at(10, "06:10"), wantFirst: "08:00", wantCount: 20},
		{name: "last slot", now: at(10, "17:05"), wantFirst: "17:30", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateSlots(salonConfig(), at(10, "00:00"), nil, tt.now)

			require.Len(t, slots, tt.wantCount)
			assert.Equal(t, tt.wantFirst, slots[0].Start.Format(domain.TimeFormat))
			for _, s := range slots {
				assert.False(t, s.Start.Before(tt.now))
				assert.True(t, IsAligned(salonConfig(), s.Start))
			}
		})
	}
}

func TestGenerateSlots_NowInOtherZone(t *testing.T) {
	// 12:15 UTC = 09:15 BRT
	now := time.Date(2025, 3, 10, 12, 15, 0, 0, time.UTC)

	slots := GenerateSlots(salonConfig(), at(10, "00:00"), nil, now)

	require.NotEmpty(t, slots)
	assert.Equal(t, "09:30", slots[0].Start.Format(domain.TimeFormat))
}

func TestGenerateSlots_NoSlotsAfterClosingOrInPast(t *testing.T) {
	assert.Empty(t, GenerateSlots(salonConfig(), at(10, "00:00"), nil, at(10, "17:31")))
	assert.Empty(t, GenerateSlots(salonConfig(), at(10, "00:00"), nil, at(10, "18:00")))
	assert.Empty(t, GenerateSlots(salonConfig(), at(9, "00:00"), nil, at(10, "07:00")))
}

func TestGenerateSlots_IntervalNotDividingDay(t *testing.T) {
	cfg := salonConfig()
	cfg.CloseTime = "10:00"
	cfg.SlotIntervalMinutes = 45

	slots := GenerateSlots(cfg, at(10, "00:00"), nil, at(9, "07:00"))

	assert.Equal(t, []string{"08:00", "08:45"}, starts(slots, false))
	for _, s := range slots {
		assert.False(t, s.End.After(at(10, "10:00")))
	}
}

func TestGenerateSlots_LunchEdgeCases(t *testing.T) {
	t.Run("zero length lunch", func(t *testing.T) {
		cfg := salonConfig()
		cfg.LunchStart = "12:00"
		cfg.LunchEnd = "12:00"

		slots := GenerateSlots(cfg, at(10, "00:00"), nil, at(9, "07:00"))
		assert.Len(t, starts(slots, true), 20)
	})

	t.Run("lunch outside hours is ignored", func(t *testing.T) {
		cfg := salonConfig()
		cfg.LunchStart = "06:00"
		cfg.LunchEnd = "07:00"

		slots := GenerateSlots(cfg, at(10, "00:00"), nil, at(9, "07:00"))
		assert.Len(t, starts(slots, true), 20)
	})

	t.Run("lunch crossing closing time is not clamped", func(t *testing.T) {
		cfg := salonConfig()
		cfg.LunchStart = "17:45"
		cfg.LunchEnd = "19:00"

		slots := GenerateSlots(cfg, at(10, "00:00"), nil, at(9, "07:00"))
		require.Len(t, slots, 20)
		assert.False(t, slots[19].Available)
		assert.True(t, slots[18].Available)
	})
}

func TestGenerateSlots_UnsortedOverlappingBusy(t *testing.T) {
	busy := []domain.BusyInterval{
		{Start: at(10, "11:00"), End: at(10, "11:45")},
		{Start: at(10, "10:15"), End: at(10, "10:20")},
		{Start: at(10, "11:30"), End: at(10, "12:00")},
		{Start: at(10, "15:00"), End: at(10, "15:00")},
		{Start: at(9, "22:00"), End: at(10, "08:10")},
	}

	slots := GenerateSlots(salonConfig(), at(10, "00:00"), busy, at(9, "07:00"))

	unavailable := map[string]bool{
		"08:00": true,
		"10:00": true,
		"11:00": true,
		"11:30": true,
		"12:00": true,
		"12:30": true,
	}
	for _, s := range slots {
		key := s.Start.Format(domain.TimeFormat)
		assert.Equal(t, !unavailable[key], s.Available, key)
	}
}

func TestGenerateSlots_SlotsAreContiguous(t *testing.T) {
	for _, interval := range []int{5, 15, 20, 30, 45, 60, 90, 120} {
		cfg := salonConfig()
		cfg.SlotIntervalMinutes = interval

		slots := GenerateSlots(cfg, at(10, "00:00"), nil, at(9, "07:00"))

		require.NotEmpty(t, slots, "interval %d", interval)
		assert.Equal(t, at(10, "08:00"), slots[0].Start)
		for i, s := range slots {
			assert.Equal(t, time.Duration(interval)*time.Minute, s.Duration())
			assert.False(t, s.End.After(at(10, "18:00")))
			if i > 0 {
				assert.Equal(t, slots[i-1].End, s.Start)
			}
		}
	}
}

func TestIsSpanFree(t *testing.T) {
	cfg := salonConfig()
	busy := []domain.BusyInterval{{Start: at(10, "15:00"), End: at(10, "16:00")}}

	assert.True(t, IsSpanFree(cfg, at(10, "13:00"), at(10, "15:00"), busy))
	assert.False(t, IsSpanFree(cfg, at(10, "14:30"), at(10, "15:30"), busy), "multi-slot span hits busy")
	assert.False(t, IsSpanFree(cfg, at(10, "11:30"), at(10, "12:30"), busy), "span hits lunch")
	assert.True(t, IsSpanFree(cfg, at(10, "16:00"), at(10, "17:00"), busy))
}

func TestIsAligned(t *testing.T) {
	cfg := salonConfig()

	assert.True(t, IsAligned(cfg, at(10, "08:00")))
	assert.True(t, IsAligned(cfg, at(10, "14:30")))
	assert.False(t, IsAligned(cfg, at(10, "14:15")))
	assert.False(t, IsAligned(cfg, at(10, "07:30")))
}

func TestGenerateSlots_PartialLastSlotDropped(t *testing.T) {
	cfg := salonConfig()
	cfg.OpenTime = "09:00"
	cfg.CloseTime = "10:45"

	slots := GenerateSlots(cfg, at(10, "00:00"), nil, at(10, "07:00"))

	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, starts(slots, false))
	for _, s := range slots {
		assert.False(t, s.End.After(at(10, "10:45")))
	}
}
