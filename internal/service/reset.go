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

// DailyResetter flips completed tasks back to incomplete on the first call of
// each calendar day in loc.
//
// The marker check and the marker write are not atomic: two requests racing
// over midnight may both reset.
type DailyResetter struct {
	records repository.RecordsRepositoryI
	markers repository.ResetMarkerRepositoryI
	clock   Clock
	loc     *time.Location
}

func NewDailyResetter(records repository.RecordsRepositoryI, markers repository.ResetMarkerRepositoryI, clock Clock, loc *time.Location) *DailyResetter {
	if records == nil || markers == nil {
		log.Fatal("on daily resetter provided nil repos")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &DailyResetter{
		records: records,
		markers: markers,
		clock:   clock,
		loc:     loc,
	}
}

func (dr *DailyResetter) EnsureDailyReset(ctx context.Context) (ResetResult, error) {
	logger := logging.FromContext(ctx)
	now := dr.clock.Now().In(dr.loc)
	today := now.Format(time.DateOnly)

	marker, err := dr.markers.Get(ctx)
	switch {
	case errors.Is(err, errorvalues.ErrMarkerNotFound):
		logger.Info("no reset marker yet, running first reset")
	case err != nil:
		return ResetResult{Date: today}, fmt.Errorf("%w: reading reset marker: %s", errorvalues.ErrInternal, err.Error())
	case marker.LastResetDate.Format(time.DateOnly) == today:
		return ResetResult{Date: today}, nil
	}

	records, err := dr.records.List(ctx, entity.TableTasks)
	if err != nil {
		return ResetResult{Date: today}, fmt.Errorf("listing tasks for daily reset: %w", err)
	}
	reset := 0
	for _, rec := range records {
		task := entity.TaskFromRecord(rec, dr.loc)
		if !task.Completed {
			continue
		}
		if _, err := dr.records.Update(ctx, entity.TableTasks, task.ID, entity.ResetFields()); err != nil {
			logger.Warn("daily reset: task not reset", slog.String("task_id", task.ID), slog.String("error", err.Error()))
			continue
		}
		reset++
	}

	err = dr.markers.Save(ctx, &entity.ResetMarker{
		LastResetDate: now,
		ResetCount:    reset,
		UpdatedAt:     now,
	})
	if err != nil {
		return ResetResult{Performed: true, ResetCount: reset, Date: today}, fmt.Errorf("%w: saving reset marker: %s", errorvalues.ErrInternal, err.Error())
	}
	logger.Info("daily reset done", slog.String("date", today), slog.Int("reset_tasks", reset))
	return ResetResult{Performed: true, ResetCount: reset, Date: today}, nil
}

// ensureReset runs the coordinator. A failure is logged and the caller goes on.
func ensureReset(ctx context.Context, resetter ResetCoordinatorI) {
	if resetter == nil {
		return
	}
	if _, err := resetter.EnsureDailyReset(ctx); err != nil {
		logging.FromContext(ctx).Error("daily reset failed", slog.String("error", err.Error()))
	}
}
