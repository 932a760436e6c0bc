package entity

import (
	"time"
)

// Record is a raw row of a remote table: store-assigned id plus its field map.
type Record struct {
	ID     string         `json:"record_id"`
	Fields map[string]any `json:"fields"`
}

type Table string

const (
	TableTasks    Table = "tasks"
	TableRewards  Table = "rewards"
	TableProgress Table = "progress"
)

type Category string

const (
	CategoryLearning   Category = "学习任务"
	CategoryLife       Category = "生活任务"
	CategoryDiscipline Category = "纪律任务"
)

const DefaultUserID = "default_user"

type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Stars       int        `json:"stars"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Reward struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	Redeemed    bool       `json:"redeemed"`
	RedeemedBy  string     `json:"redeemed_by,omitempty"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
}

type ProgressSnapshot struct {
	UserID       string
	TotalStars   int
	CurrentLevel int
	TaskID       string
	Completed    bool
}

// Progress is the derived gamification state of the shared task pool.
type Progress struct {
	CompletedTasks int `json:"completed_tasks"`
	TotalTasks     int `json:"total_tasks"`
	CurrentLevel   int `json:"current_level"`
	TotalStars     int `json:"total_stars"`
	StreakDays     int `json:"streak_days"`
}

type ResetMarker struct {
	LastResetDate time.Time
	ResetCount    int
	UpdatedAt     time.Time
}
