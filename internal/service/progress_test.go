package service_test

import (
	"testing"
	"time"

	"github.com/limbo/starboard/internal/service"
	"github.com/limbo/starboard/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, 1, service.Level(0))
	for c := range 30 {
		assert.Equal(t, c/3+1, service.Level(c), "completed=%d", c)
	}
	assert.Equal(t, 2, service.Level(3))
	assert.Equal(t, 4, service.Level(9))
	assert.Equal(t, 1, service.Level(-2))
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t.Add(9 * time.Hour)
}

func TestStreakDays(t *testing.T) {
	testCases := []struct {
		Desc   string
		Dates  []time.Time
		Streak int
	}{
		{Desc: "empty", Dates: nil, Streak: 0},
		{Desc: "single day", Dates: []time.Time{day("2024-01-01")}, Streak: 1},
		{Desc: "same day twice", Dates: []time.Time{day("2024-01-01"), day("2024-01-01").Add(time.Hour)}, Streak: 1},
		{Desc: "three consecutive days", Dates: []time.Time{day("2024-01-03"), day("2024-01-01"), day("2024-01-02")}, Streak: 3},
		{Desc: "gap breaks the run", Dates: []time.Time{day("2024-01-01"), day("2024-01-02"), day("2024-01-04")}, Streak: 1},
		{Desc: "last run counts", Dates: []time.Time{day("2024-01-01"), day("2024-01-03"), day("2024-01-04")}, Streak: 2},
		{Desc: "across month end", Dates: []time.Time{day("2024-02-28"), day("2024-02-29"), day("2024-03-01")}, Streak: 3},
		{Desc: "zero times dropped", Dates: []time.Time{{}, day("2024-01-01")}, Streak: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Streak, service.StreakDays(tc.Dates, time.UTC))
		})
	}
}

func TestStreakDaysUsesLocation(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatal(err)
	}
	// 2024-01-01 20:00 UTC is already 2024-01-02 in Shanghai.
	stamps := []time.Time{
		time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, 1, service.StreakDays(stamps, time.UTC))
	assert.Equal(t, 2, service.StreakDays(stamps, shanghai))
}

func TestComputeProgress(t *testing.T) {
	at := day("2024-01-02")
	before := day("2024-01-01")
	tasks := []entity.Task{
		{ID: "a", Stars: 3, Completed: true, CompletedAt: &at},
		{ID: "b", Stars: 2, Completed: true, CompletedAt: &before},
		{ID: "c", Stars: 1, Completed: true},
		{ID: "d", Stars: 5, Completed: false, CompletedAt: &at},
	}
	progress := service.ComputeProgress(tasks, time.UTC)
	assert.Equal(t, entity.Progress{
		CompletedTasks: 3,
		TotalTasks:     4,
		CurrentLevel:   2,
		TotalStars:     6,
		StreakDays:     2,
	}, progress)

	empty := service.ComputeProgress(nil, time.UTC)
	assert.Equal(t, entity.Progress{CurrentLevel: 1}, empty)
}

func TestComputeProgressFromRecords(t *testing.T) {
	records := []entity.Record{
		{ID: "a", Fields: map[string]any{entity.FieldTaskCompleted: true, entity.FieldTaskStars: float64(3)}},
		{ID: "b", Fields: map[string]any{entity.FieldTaskStatus: entity.StatusYes}},
		{ID: "c", Fields: map[string]any{entity.FieldTaskStatus: entity.StatusNo, entity.FieldTaskStars: "4"}},
	}
	progress := service.ComputeProgress(entity.TasksFromRecords(records, time.UTC), time.UTC)
	assert.Equal(t, 2, progress.CompletedTasks)
	assert.Equal(t, 4, progress.TotalStars)
	assert.Equal(t, 1, progress.CurrentLevel)
	assert.Equal(t, 0, progress.StreakDays)
}

func TestStreakDaysFromRecordLayouts(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	millis := func(ts time.Time) float64 { return float64(ts.UnixMilli()) }

	testCases := []struct {
		Desc   string
		Loc    *time.Location
		Stamps []any
		Streak int
	}{
		{
			Desc:   "zone-less iso across local midnight",
			Loc:    shanghai,
			Stamps: []any{"2024-01-01T23:00:00", "2024-01-02T01:00:00"},
			Streak: 2,
		},
		{
			Desc:   "zone-less iso same local day",
			Loc:    shanghai,
			Stamps: []any{"2024-01-02T00:30:00", "2024-01-02T23:30:00"},
			Streak: 1,
		},
		{
			Desc:   "space separated layout",
			Loc:    shanghai,
			Stamps: []any{"2024-01-01 23:00:00", "2024-01-02 01:00:00", "2024-01-03 07:00:00"},
			Streak: 3,
		},
		{
			Desc:   "date only west of utc",
			Loc:    newYork,
			Stamps: []any{"2024-01-01", "2024-01-02"},
			Streak: 2,
		},
		{
			Desc:   "date only then zone-less iso on the next day",
			Loc:    newYork,
			Stamps: []any{"2024-01-01", "2024-01-02T22:00:00"},
			Streak: 2,
		},
		{
			Desc:   "rfc3339 nano with offset",
			Loc:    shanghai,
			Stamps: []any{"2024-01-01T15:30:00.250Z", "2024-01-02T16:30:00.250Z"},
			Streak: 1,
		},
		{
			Desc:   "epoch millis",
			Loc:    shanghai,
			Stamps: []any{millis(time.Date(2024, 1, 1, 23, 0, 0, 0, shanghai)), millis(time.Date(2024, 1, 2, 1, 0, 0, 0, shanghai))},
			Streak: 2,
		},
		{
			Desc:   "mixed layouts",
			Loc:    shanghai,
			Stamps: []any{"2024-01-01", millis(time.Date(2024, 1, 2, 12, 0, 0, 0, shanghai)), "2024-01-03T08:00:00+08:00"},
			Streak: 3,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			records := make([]entity.Record, 0, len(tc.Stamps))
			for i, stamp := range tc.Stamps {
				records = append(records, entity.Record{
					ID: string(rune('a' + i)),
					Fields: map[string]any{
						entity.FieldTaskCompleted:   true,
						entity.FieldTaskCompletedAt: stamp,
					},
				})
			}
			progress := service.ComputeProgress(entity.TasksFromRecords(records, tc.Loc), tc.Loc)
			assert.Equal(t, tc.Streak, progress.StreakDays)
		})
	}
}
