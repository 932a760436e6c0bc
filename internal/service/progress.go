package service

import (
	"slices"
	"time"

	"github.com/limbo/starboard/pkg/entity"
)

// TasksPerLevel completed tasks raise the level by one.
const TasksPerLevel = 3

// Level is 1 with no completions and grows by one every TasksPerLevel tasks.
func Level(completed int) int {
	if completed < 0 {
		completed = 0
	}
	return completed/TasksPerLevel + 1
}

// TotalStars sums the star values of completed tasks.
func TotalStars(tasks []entity.Task) int {
	total := 0
	for _, t := range tasks {
		if t.Completed {
			total += t.Stars
		}
	}
	return total
}

// StreakDays returns the length of the last run of consecutive calendar days
// (in loc) among the timestamps. Duplicate days count once.
func StreakDays(timestamps []time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	seen := make(map[time.Time]struct{}, len(timestamps))
	days := make([]time.Time, 0, len(timestamps))
	for _, ts := range timestamps {
		if ts.IsZero() {
			continue
		}
		y, m, d := ts.In(loc).Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	if len(days) == 0 {
		return 0
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			streak++
		} else {
			streak = 1
		}
	}
	return streak
}

// ComputeProgress derives the gamification state from the full task list.
// The streak is taken from completion timestamps of completed tasks.
func ComputeProgress(tasks []entity.Task, loc *time.Location) entity.Progress {
	completed := 0
	stamps := make([]time.Time, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			continue
		}
		completed++
		if t.CompletedAt != nil {
			stamps = append(stamps, *t.CompletedAt)
		}
	}
	return entity.Progress{
		CompletedTasks: completed,
		TotalTasks:     len(tasks),
		CurrentLevel:   Level(completed),
		TotalStars:     TotalStars(tasks),
		StreakDays:     StreakDays(stamps, loc),
	}
}
