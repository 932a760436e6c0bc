package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/internal/repository"
	"github.com/limbo/starboard/pkg/entity"
	"golang.org/x/sync/errgroup"
)

type TasksService struct {
	records  repository.RecordsRepositoryI
	resetter ResetCoordinatorI
	clock    Clock
	loc      *time.Location
}

func NewTasksService(records repository.RecordsRepositoryI, resetter ResetCoordinatorI, clock Clock, loc *time.Location) *TasksService {
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
	return &TasksService{
		records:  records,
		resetter: resetter,
		clock:    clock,
		loc:      loc,
	}
}

func (ts *TasksService) ListTasks(ctx context.Context) ([]entity.Record, error) {
	ensureReset(ctx, ts.resetter)
	tasks, err := ts.records.List(ctx, entity.TableTasks)
	if err != nil {
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	return nonNil(tasks), nil
}

func (ts *TasksService) GetProgress(ctx context.Context) (entity.Progress, error) {
	tasks, err := ts.ListTasks(ctx)
	if err != nil {
		return entity.Progress{}, err
	}
	return ComputeProgress(entity.TasksFromRecords(tasks, ts.loc), ts.loc), nil
}

func (ts *TasksService) GetAllData(ctx context.Context) (*AllData, error) {
	ensureReset(ctx, ts.resetter)

	var tasks, rewards []entity.Record
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = ts.records.List(gctx, entity.TableTasks)
		return err
	})
	g.Go(func() error {
		var err error
		rewards, err = ts.records.List(gctx, entity.TableRewards)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("records repository error: %w", err)
	}

	tasks = nonNil(tasks)
	return &AllData{
		Tasks:    tasks,
		Progress: ComputeProgress(entity.TasksFromRecords(tasks, ts.loc), ts.loc),
		Rewards:  nonNil(rewards),
	}, nil
}

func (ts *TasksService) UpdateTask(ctx context.Context, id string, fields map[string]any) (*entity.Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: task id is required", errorvalues.ErrValidation)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: fields must not be empty", errorvalues.ErrValidation)
	}
	ensureReset(ctx, ts.resetter)

	changes, err := ts.normalizeCompletion(fields)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", errorvalues.ErrValidation)
	}
	rec, err := ts.records.Update(ctx, entity.TableTasks, id, changes)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNotFound) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, fmt.Errorf("records repository error: %w", err)
	}
	return rec, nil
}

// normalizeCompletion replaces the completion keys (client "completed", the
// flag column or the status column) with the full completion write set.
// Other fields pass through.
func (ts *TasksService) normalizeCompletion(fields map[string]any) (map[string]any, error) {
	changes := make(map[string]any, len(fields)+2)
	var completed *bool
	for k, v := range fields {
		var (
			b  bool
			ok bool
		)
		switch k {
		// the server stamps completion time itself
		case entity.FieldCompletionTimeAPI:
			continue
		case entity.FieldCompletedAPI, entity.FieldTaskCompleted:
			b, ok = v.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: field %s must be a boolean", errorvalues.ErrValidation, k)
			}
		case entity.FieldTaskStatus:
			b, ok = entity.ParseStatus(v)
			if !ok {
				return nil, fmt.Errorf("%w: field %s must be %s or %s", errorvalues.ErrValidation, k, entity.StatusYes, entity.StatusNo)
			}
		default:
			changes[k] = v
			continue
		}
		if completed != nil && *completed != b {
			return nil, fmt.Errorf("%w: conflicting completion values", errorvalues.ErrValidation)
		}
		completed = &b
	}
	if completed == nil {
		return changes, nil
	}
	for k, v := range entity.CompletionFields(*completed, ts.clock.Now().In(ts.loc)) {
		changes[k] = v
	}
	if !*completed {
		changes[entity.FieldTaskCompletedAt] = nil
	}
	return changes, nil
}

func nonNil(recs []entity.Record) []entity.Record {
	if recs == nil {
		return []entity.Record{}
	}
	return recs
}
