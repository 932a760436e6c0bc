package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/internal/repository"
	"github.com/limbo/starboard/pkg/entity"
	"github.com/limbo/starboard/pkg/logging"
)

type RewardsService struct {
	records repository.RecordsRepositoryI
	clock   Clock
	loc     *time.Location
}

func NewRewardsService(records repository.RecordsRepositoryI, clock Clock, loc *time.Location) *RewardsService {
	if records == nil {
		log.Fatal("provided nil records repo")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	InitValidator()
	return &RewardsService{
		records: records,
		clock:   clock,
		loc:     loc,
	}
}

func (rs *RewardsService) ListRewards(ctx context.Context) ([]entity.Record, error) {
	rewards, err := rs.records.List(ctx, entity.TableRewards)
	if err != nil {
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	return nonNil(rewards), nil
}

// Redeem checks the client-reported balance against the reward cost and marks
// the reward redeemed. The single update is the commit point. Two concurrent
// redemptions of the same reward can both pass the redeemed check.
func (rs *RewardsService) Redeem(ctx context.Context, req *RedeemRequest) (*RedeemResult, error) {
	if req == nil {
		return nil, errorvalues.ErrEmptyRewardID
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	userID := req.UserID
	if userID == "" {
		userID = entity.DefaultUserID
	}

	rec, err := rs.records.Get(ctx, entity.TableRewards, req.RewardID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNotFound) {
			return nil, errorvalues.ErrRewardNotFound
		}
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	reward := entity.RewardFromRecord(*rec)
	if reward.Redeemed {
		return nil, errorvalues.ErrRewardRedeemed
	}
	if req.CurrentStars < reward.Cost {
		return nil, &errorvalues.InsufficientBalanceError{Required: reward.Cost, Balance: req.CurrentStars}
	}

	updated, err := rs.records.Update(ctx, entity.TableRewards, req.RewardID,
		entity.RedemptionFields(userID, rs.clock.Now().In(rs.loc)))
	if err != nil {
		if errors.Is(err, errorvalues.ErrNotFound) {
			return nil, errorvalues.ErrRewardNotFound
		}
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	if updated == nil {
		updated = rec
	}
	remaining := req.CurrentStars - reward.Cost

	logging.FromContext(ctx).Info("reward redeemed",
		slog.String("uid", userID),
		slog.String("reward_id", req.RewardID),
		slog.Int("stars_spent", reward.Cost))
	return &RedeemResult{
		Reward:         updated,
		StarsSpent:     reward.Cost,
		RemainingStars: remaining,
		Message:        fmt.Sprintf("Redeemed %q for %d stars, %d stars left.", reward.Name, reward.Cost, remaining),
	}, nil
}
