package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/pkg/bitable"
	"github.com/limbo/starboard/pkg/entity"
)

// RecordsRepository maps logical tables onto Bitable table ids and turns
// client failures into error kinds.
type RecordsRepository struct {
	client BitableClient
	tables TableIDs
}

func NewRecordsRepo(client BitableClient, tables TableIDs) *RecordsRepository {
	if client == nil {
		log.Fatal("on records repository provided nil bitable client")
	}
	return &RecordsRepository{
		client: client,
		tables: tables,
	}
}

func (rr *RecordsRepository) tableID(table entity.Table) (string, error) {
	var id string
	switch table {
	case entity.TableTasks:
		id = rr.tables.Tasks
	case entity.TableRewards:
		id = rr.tables.Rewards
	case entity.TableProgress:
		id = rr.tables.Progress
	}
	if id == "" {
		return "", fmt.Errorf("%w: table %q is not configured", errorvalues.ErrInternal, table)
	}
	return id, nil
}

func (rr *RecordsRepository) List(ctx context.Context, table entity.Table) ([]entity.Record, error) {
	tableID, err := rr.tableID(table)
	if err != nil {
		return nil, err
	}
	records, err := rr.client.ListRecords(ctx, tableID)
	if err != nil {
		return nil, classify("listing "+string(table), err)
	}
	result := make([]entity.Record, 0, len(records))
	for _, rec := range records {
		result = append(result, toEntity(rec))
	}
	return result, nil
}

func (rr *RecordsRepository) Get(ctx context.Context, table entity.Table, id string) (*entity.Record, error) {
	tableID, err := rr.tableID(table)
	if err != nil {
		return nil, err
	}
	rec, err := rr.client.GetRecord(ctx, tableID, id)
	if err != nil {
		return nil, classify("getting "+string(table)+" record "+id, err)
	}
	result := toEntity(*rec)
	return &result, nil
}

func (rr *RecordsRepository) Create(ctx context.Context, table entity.Table, fields map[string]any) (*entity.Record, error) {
	tableID, err := rr.tableID(table)
	if err != nil {
		return nil, err
	}
	rec, err := rr.client.CreateRecord(ctx, tableID, fields)
	if err != nil {
		return nil, classify("creating "+string(table)+" record", err)
	}
	result := toEntity(*rec)
	return &result, nil
}

func (rr *RecordsRepository) Update(ctx context.Context, table entity.Table, id string, fields map[string]any) (*entity.Record, error) {
	tableID, err := rr.tableID(table)
	if err != nil {
		return nil, err
	}
	rec, err := rr.client.UpdateRecord(ctx, tableID, id, fields)
	if err != nil {
		return nil, classify("updating "+string(table)+" record "+id, err)
	}
	result := toEntity(*rec)
	return &result, nil
}

func toEntity(rec bitable.Record) entity.Record {
	fields := rec.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return entity.Record{ID: rec.ID, Fields: fields}
}

func classify(op string, err error) error {
	var apiErr *bitable.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == bitable.CodeRecordNotFound || apiErr.HTTPStatus == http.StatusNotFound {
			return fmt.Errorf("%s: %w", op, errorvalues.ErrNotFound)
		}
		return &errorvalues.UpstreamError{
			Op:        op,
			Code:      apiErr.Code,
			Message:   apiErr.Msg,
			Retryable: apiErr.HTTPStatus >= http.StatusInternalServerError || apiErr.HTTPStatus == http.StatusTooManyRequests,
			Err:       err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &errorvalues.UpstreamError{Op: op, Err: err}
	}
	// Timeouts and transport failures are transient.
	var netErr net.Error
	retryable := errors.Is(err, context.DeadlineExceeded) || errors.As(err, &netErr)
	return &errorvalues.UpstreamError{Op: op, Retryable: retryable, Err: err}
}
