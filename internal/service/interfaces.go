package service

import (
	"context"
	"time"

	"github.com/limbo/starboard/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

type CheckInRequest struct {
	TaskIDs []string `validate:"required,min=1"`
	UserID  string
}

type CheckInResult struct {
	RewardMessage    string          `json:"reward_message"`
	Progress         entity.Progress `json:"progress"`
	CompletedTaskIDs []string        `json:"completed_task_ids"`
}

type RedeemRequest struct {
	RewardID string `validate:"required,notblank"`
	UserID   string
	// Balance as reported by the client; the server keeps no ledger
	CurrentStars int `validate:"min=0"`
}

type RedeemResult struct {
	Reward         *entity.Record `json:"reward"`
	StarsSpent     int            `json:"stars_spent"`
	RemainingStars int            `json:"remaining_stars"`
	Message        string         `json:"message"`
}

type AllData struct {
	Tasks    []entity.Record `json:"tasks"`
	Progress entity.Progress `json:"progress"`
	Rewards  []entity.Record `json:"rewards"`
}

type ResetResult struct {
	Performed  bool
	ResetCount int
	Date       string
}

type TasksServiceI interface {
	// Lists task records after making sure today's reset happened
	ListTasks(ctx context.Context) ([]entity.Record, error)
	// Applies client field changes to one task. "completed" is expanded to every completion field
	UpdateTask(ctx context.Context, id string, fields map[string]any) (*entity.Record, error)
	GetProgress(ctx context.Context) (entity.Progress, error)
	GetAllData(ctx context.Context) (*AllData, error)
	// Marks tasks completed, recomputes progress and appends snapshots
	CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResult, error)
}

type RewardsServiceI interface {
	ListRewards(ctx context.Context) ([]entity.Record, error)
	// Spends client-asserted stars on a reward. Not safe against concurrent double spending
	Redeem(ctx context.Context, req *RedeemRequest) (*RedeemResult, error)
}

type ResetCoordinatorI interface {
	// Resets completion flags once per calendar day
	EnsureDailyReset(ctx context.Context) (ResetResult, error)
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
