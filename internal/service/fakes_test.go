package service_test

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/pkg/entity"
)

// recordsStore is an in-memory records repository with switchable failures.
type recordsStore struct {
	mu     sync.Mutex
	tables map[entity.Table][]entity.Record
	nextID int

	listErr   map[entity.Table]error
	createErr map[entity.Table]error
	updateErr map[string]error

	updated []string
	created map[entity.Table][]map[string]any
}

func newRecordsStore() *recordsStore {
	return &recordsStore{
		tables:    make(map[entity.Table][]entity.Record),
		listErr:   make(map[entity.Table]error),
		createErr: make(map[entity.Table]error),
		updateErr: make(map[string]error),
		created:   make(map[entity.Table][]map[string]any),
	}
}

func (rs *recordsStore) put(table entity.Table, id string, fields map[string]any) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.tables[table] = append(rs.tables[table], entity.Record{ID: id, Fields: maps.Clone(fields)})
}

func (rs *recordsStore) fields(table entity.Table, id string) map[string]any {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for _, rec := range rs.tables[table] {
		if rec.ID == id {
			return maps.Clone(rec.Fields)
		}
	}
	return nil
}

func (rs *recordsStore) List(ctx context.Context, table entity.Table) ([]entity.Record, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.listErr[table]; err != nil {
		return nil, err
	}
	out := make([]entity.Record, 0, len(rs.tables[table]))
	for _, rec := range rs.tables[table] {
		out = append(out, entity.Record{ID: rec.ID, Fields: maps.Clone(rec.Fields)})
	}
	return out, nil
}

func (rs *recordsStore) Get(ctx context.Context, table entity.Table, id string) (*entity.Record, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for _, rec := range rs.tables[table] {
		if rec.ID == id {
			return &entity.Record{ID: rec.ID, Fields: maps.Clone(rec.Fields)}, nil
		}
	}
	return nil, fmt.Errorf("get record %s: %w", id, errorvalues.ErrNotFound)
}

func (rs *recordsStore) Create(ctx context.Context, table entity.Table, fields map[string]any) (*entity.Record, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.createErr[table]; err != nil {
		return nil, err
	}
	rs.nextID++
	rec := entity.Record{ID: fmt.Sprintf("rec%d", rs.nextID), Fields: maps.Clone(fields)}
	rs.tables[table] = append(rs.tables[table], rec)
	rs.created[table] = append(rs.created[table], maps.Clone(fields))
	return &rec, nil
}

func (rs *recordsStore) Update(ctx context.Context, table entity.Table, id string, fields map[string]any) (*entity.Record, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if err := rs.updateErr[id]; err != nil {
		return nil, err
	}
	for i, rec := range rs.tables[table] {
		if rec.ID != id {
			continue
		}
		for k, v := range fields {
			if v == nil {
				delete(rec.Fields, k)
				continue
			}
			rec.Fields[k] = v
		}
		rs.tables[table][i] = rec
		rs.updated = append(rs.updated, id)
		return &entity.Record{ID: rec.ID, Fields: maps.Clone(rec.Fields)}, nil
	}
	return nil, fmt.Errorf("update record %s: %w", id, errorvalues.ErrNotFound)
}

func (rs *recordsStore) updates() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.updated...)
}

type memMarkers struct {
	marker *entity.ResetMarker
	saves  int
}

func (mm *memMarkers) Get(ctx context.Context) (*entity.ResetMarker, error) {
	if mm.marker == nil {
		return nil, errorvalues.ErrMarkerNotFound
	}
	m := *mm.marker
	return &m, nil
}

func (mm *memMarkers) Save(ctx context.Context, marker *entity.ResetMarker) error {
	m := *marker
	mm.marker = &m
	mm.saves++
	return nil
}

type fakeClock struct {
	now time.Time
}

func (fc *fakeClock) Now() time.Time {
	return fc.now
}

func (fc *fakeClock) advance(d time.Duration) {
	fc.now = fc.now.Add(d)
}

var upstreamErr = &errorvalues.UpstreamError{Op: "bitable", Code: 1254000, Message: "remote failure"}

func taskFields(name string, stars int, completed bool) map[string]any {
	return map[string]any{
		entity.FieldTaskName:      name,
		entity.FieldTaskStars:     float64(stars),
		entity.FieldTaskCompleted: completed,
		entity.FieldTaskStatus:    entity.StatusOf(completed),
	}
}
