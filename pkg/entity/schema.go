package entity

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names of the Bitable tables. Two completion representations coexist
// on the task table and are never migrated, so both are read and written.
const (
	FieldTaskName        = "任务名称"
	FieldTaskDescription = "任务描述"
	FieldTaskCategory    = "任务类型"
	FieldTaskStars       = "星星数量"
	FieldTaskCompleted   = "已完成"
	FieldTaskStatus      = "完成状态"
	FieldTaskCompletedAt = "完成时间"

	FieldRewardName        = "奖励名称"
	FieldRewardDescription = "奖励描述"
	FieldRewardCost        = "所需星星数"
	FieldRewardCostAlias   = "stars_required"
	FieldRewardRedeemed    = "是否已兑换"
	FieldRewardRedeemedBy  = "兑换用户"
	FieldRewardRedeemedAt  = "兑换时间"

	FieldProgressUserID    = "用户ID"
	FieldProgressStars     = "总星星数"
	FieldProgressLevel     = "当前等级"
	FieldProgressTaskID    = "任务ID"
	FieldProgressCompleted = "是否完成"

	// Keys accepted from clients on task updates.
	FieldCompletedAPI      = "completed"
	FieldCompletionTimeAPI = "completion_time"
)

const (
	StatusYes = "是"
	StatusNo  = "否"
)

func StatusOf(v bool) string {
	if v {
		return StatusYes
	}
	return StatusNo
}

// TaskFromRecord reads a task row. Timestamps without a zone are taken as
// wall time in loc (UTC when nil).
func TaskFromRecord(rec Record, loc *time.Location) Task {
	t := Task{
		ID:          rec.ID,
		Name:        stringField(rec.Fields, FieldTaskName),
		Description: stringField(rec.Fields, FieldTaskDescription),
		Category:    Category(stringField(rec.Fields, FieldTaskCategory)),
		Stars:       1,
	}
	if stars, ok := intField(rec.Fields, FieldTaskStars); ok && stars > 0 {
		t.Stars = stars
	}
	flag, _ := boolField(rec.Fields, FieldTaskCompleted)
	t.Completed = flag || isYes(rec.Fields[FieldTaskStatus])
	t.CompletedAt = timeField(rec.Fields, FieldTaskCompletedAt, loc)
	return t
}

func TasksFromRecords(recs []Record, loc *time.Location) []Task {
	tasks := make([]Task, 0, len(recs))
	for _, rec := range recs {
		tasks = append(tasks, TaskFromRecord(rec, loc))
	}
	return tasks
}

func RewardFromRecord(rec Record) Reward {
	r := Reward{
		ID:          rec.ID,
		Name:        stringField(rec.Fields, FieldRewardName),
		Description: stringField(rec.Fields, FieldRewardDescription),
		RedeemedBy:  stringField(rec.Fields, FieldRewardRedeemedBy),
		RedeemedAt:  timeField(rec.Fields, FieldRewardRedeemedAt, time.UTC),
	}
	if cost, ok := intField(rec.Fields, FieldRewardCost); ok {
		r.Cost = cost
	} else if cost, ok := intField(rec.Fields, FieldRewardCostAlias); ok {
		r.Cost = cost
	}
	flag, _ := boolField(rec.Fields, FieldRewardRedeemed)
	r.Redeemed = flag || isYes(rec.Fields[FieldRewardRedeemed])
	return r
}

// CompletionFields builds the write set for a completion change, covering
// both representations of the flag.
func CompletionFields(completed bool, at time.Time) map[string]any {
	fields := map[string]any{
		FieldTaskCompleted: completed,
		FieldTaskStatus:    StatusOf(completed),
	}
	if completed {
		fields[FieldTaskCompletedAt] = at.Format(time.RFC3339)
	}
	return fields
}

// ResetFields only flips the flag; the completion timestamp is kept.
func ResetFields() map[string]any {
	return map[string]any{
		FieldTaskCompleted: false,
		FieldTaskStatus:    StatusNo,
	}
}

func RedemptionFields(userID string, at time.Time) map[string]any {
	return map[string]any{
		FieldRewardRedeemed:   StatusYes,
		FieldRewardRedeemedBy: userID,
		FieldRewardRedeemedAt: at.Format(time.RFC3339),
	}
}

func (s ProgressSnapshot) Fields() map[string]any {
	fields := map[string]any{
		FieldProgressUserID: s.UserID,
		FieldProgressStars:  s.TotalStars,
		FieldProgressLevel:  s.CurrentLevel,
	}
	if s.TaskID != "" {
		fields[FieldProgressTaskID] = s.TaskID
		fields[FieldProgressCompleted] = s.Completed
	}
	return fields
}

func (t Task) Fields() map[string]any {
	return map[string]any{
		FieldTaskName:        t.Name,
		FieldTaskDescription: t.Description,
		FieldTaskCategory:    string(t.Category),
		FieldTaskStars:       t.Stars,
		FieldTaskCompleted:   t.Completed,
		FieldTaskStatus:      StatusOf(t.Completed),
	}
}

func (r Reward) Fields() map[string]any {
	return map[string]any{
		FieldRewardName:        r.Name,
		FieldRewardDescription: r.Description,
		FieldRewardCost:        r.Cost,
		FieldRewardRedeemed:    StatusOf(r.Redeemed),
	}
}

// ParseStatus reads a completion status value: a boolean, 是/否 or yes/no.
func ParseStatus(v any) (bool, bool) {
	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		switch {
		case s == StatusYes || strings.EqualFold(s, "yes"):
			return true, true
		case s == StatusNo || strings.EqualFold(s, "no"):
			return false, true
		}
	}
	return false, false
}

func isYes(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	return s == StatusYes || strings.EqualFold(s, "yes")
}

// stringField also unwraps Bitable rich text, which arrives as a list of
// {"type":"text","text":...} segments.
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case []any:
		var sb strings.Builder
		for _, seg := range v {
			if m, ok := seg.(map[string]any); ok {
				if text, ok := m["text"].(string); ok {
					sb.WriteString(text)
				}
			}
		}
		return sb.String()
	default:
		return ""
	}
}

func intField(fields map[string]any, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			f, ferr := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	default:
		return 0, false
	}
}

func boolField(fields map[string]any, key string) (bool, bool) {
	v, ok := fields[key].(bool)
	return v, ok
}

// timeField accepts RFC 3339 / ISO-8601 strings and Bitable date cells
// (epoch milliseconds). Zone-less strings are read as wall time in loc.
func timeField(fields map[string]any, key string, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.UTC
	}
	var t time.Time
	switch v := fields[key].(type) {
	case string:
		parsed, ok := parseTimestamp(v, loc)
		if !ok {
			return nil
		}
		t = parsed
	case float64:
		t = time.UnixMilli(int64(v)).In(loc)
	case int64:
		t = time.UnixMilli(v).In(loc)
	case int:
		t = time.UnixMilli(int64(v)).In(loc)
	default:
		return nil
	}
	return &t
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parseTimestamp keeps an explicit offset when the string has one.
func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
