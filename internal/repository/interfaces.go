package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/starboard/pkg/bitable"
	"github.com/limbo/starboard/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go -package=mocks

type RecordsRepositoryI interface {
	// Lists every record of the table
	List(ctx context.Context, table entity.Table) ([]entity.Record, error)
	// Gets record by id. Returns ErrNotFound kind for unknown ids
	Get(ctx context.Context, table entity.Table, id string) (*entity.Record, error)
	// Creates record with given fields and returns it with store-assigned id
	Create(ctx context.Context, table entity.Table, fields map[string]any) (*entity.Record, error)
	// Overwrites given fields of record, other fields stay untouched
	Update(ctx context.Context, table entity.Table, id string, fields map[string]any) (*entity.Record, error)
}

type ResetMarkerRepositoryI interface {
	// Returns ErrMarkerNotFound if reset never ran
	Get(ctx context.Context) (*entity.ResetMarker, error)
	// Replaces the marker
	Save(ctx context.Context, marker *entity.ResetMarker) error
}

type BitableClient interface {
	ListRecords(ctx context.Context, tableID string) ([]bitable.Record, error)
	GetRecord(ctx context.Context, tableID, recordID string) (*bitable.Record, error)
	CreateRecord(ctx context.Context, tableID string, fields map[string]any) (*bitable.Record, error)
	UpdateRecord(ctx context.Context, tableID, recordID string, fields map[string]any) (*bitable.Record, error)
}

type TableIDs struct {
	Tasks    string
	Rewards  string
	Progress string
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
