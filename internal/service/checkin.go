package service

import (
	"context"
	"fmt"
	"log/slog"

	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/pkg/entity"
	"github.com/limbo/starboard/pkg/logging"
)

// CheckIn completes the requested tasks and appends progress snapshots.
//
// Unknown ids are dropped. Completion writes stop at the first failure, so a
// partially applied check-in is possible; snapshot writes never fail the call.
func (ts *TasksService) CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResult, error) {
	if req == nil {
		return nil, errorvalues.ErrEmptyTaskIDs
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	logger := logging.FromContext(ctx)
	userID := req.UserID
	if userID == "" {
		userID = entity.DefaultUserID
	}

	ensureReset(ctx, ts.resetter)

	tasks, err := ts.records.List(ctx, entity.TableTasks)
	if err != nil {
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	known := make(map[string]struct{}, len(tasks))
	for _, rec := range tasks {
		known[rec.ID] = struct{}{}
	}
	resolved := make([]string, 0, len(req.TaskIDs))
	seen := make(map[string]struct{}, len(req.TaskIDs))
	for _, id := range req.TaskIDs {
		if _, ok := known[id]; !ok {
			logger.Warn("check-in: unknown task id dropped", slog.String("task_id", id))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}

	now := ts.clock.Now().In(ts.loc)
	for _, id := range resolved {
		if _, err := ts.records.Update(ctx, entity.TableTasks, id, entity.CompletionFields(true, now)); err != nil {
			return nil, fmt.Errorf("completing task %s: %w", id, err)
		}
	}

	tasks, err = ts.records.List(ctx, entity.TableTasks)
	if err != nil {
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	progress := ComputeProgress(entity.TasksFromRecords(tasks, ts.loc), ts.loc)

	ts.appendSnapshots(ctx, userID, progress, resolved)

	logger.Info("check-in done", slog.String("uid", userID), slog.Int("completed", len(resolved)))
	return &CheckInResult{
		RewardMessage:    checkInMessage(len(resolved), progress),
		Progress:         progress,
		CompletedTaskIDs: resolved,
	}, nil
}

func (ts *TasksService) appendSnapshots(ctx context.Context, userID string, progress entity.Progress, taskIDs []string) {
	snapshots := make([]entity.ProgressSnapshot, 0, len(taskIDs))
	for _, id := range taskIDs {
		snapshots = append(snapshots, entity.ProgressSnapshot{
			UserID:       userID,
			TotalStars:   progress.TotalStars,
			CurrentLevel: progress.CurrentLevel,
			TaskID:       id,
			Completed:    true,
		})
	}
	if len(snapshots) == 0 {
		snapshots = append(snapshots, entity.ProgressSnapshot{
			UserID:       userID,
			TotalStars:   progress.TotalStars,
			CurrentLevel: progress.CurrentLevel,
		})
	}
	for _, snap := range snapshots {
		if _, err := ts.records.Create(ctx, entity.TableProgress, snap.Fields()); err != nil {
			logging.FromContext(ctx).Warn("progress snapshot not written",
				slog.String("task_id", snap.TaskID),
				slog.String("error", err.Error()))
		}
	}
}

func checkInMessage(done int, p entity.Progress) string {
	return fmt.Sprintf("Check-in complete! %d task(s) done just now. You are level %d with %d stars and a %d-day streak.",
		done, p.CurrentLevel, p.TotalStars, p.StreakDays)
}
