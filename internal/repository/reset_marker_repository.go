package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/pkg/cleanup"
	"github.com/limbo/starboard/pkg/entity"
)

type ResetMarkerRepository struct {
	conn PgConnection
}

func NewResetMarkerRepo(cfg DBConfig) *ResetMarkerRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for resetMarkerRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for resetMarkerRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ResetMarkerRepository{
		conn: pool,
	}
}

func NewResetMarkerRepoWithConn(conn PgConnection) *ResetMarkerRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for resetMarkerRepo: " + err.Error())
	}
	return &ResetMarkerRepository{
		conn: conn,
	}
}

func (mr *ResetMarkerRepository) Get(ctx context.Context) (*entity.ResetMarker, error) {
	var marker entity.ResetMarker
	row := mr.conn.QueryRow(ctx, `SELECT last_reset_date, reset_count, updated_at FROM reset_markers WHERE id = 1;`)
	if err := row.Scan(&marker.LastResetDate, &marker.ResetCount, &marker.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrMarkerNotFound
		}
		return nil, errors.New("getting reset marker error: " + err.Error())
	}
	return &marker, nil
}

func (mr *ResetMarkerRepository) Save(ctx context.Context, marker *entity.ResetMarker) error {
	if marker == nil {
		return errors.New("reset marker is nil")
	}
	_, err := mr.conn.Exec(
		ctx,
		`INSERT INTO reset_markers (id, last_reset_date, reset_count, updated_at) VALUES (1, $1, $2, $3)
ON CONFLICT (id) DO UPDATE SET last_reset_date = EXCLUDED.last_reset_date, reset_count = EXCLUDED.reset_count, updated_at = EXCLUDED.updated_at;`,
		civilDate(marker.LastResetDate),
		marker.ResetCount,
		marker.UpdatedAt,
	)
	if err != nil {
		return errors.New("saving reset marker error: " + err.Error())
	}
	return nil
}

// civilDate keeps the calendar day of t and drops its zone, so the date
// column stores the day the caller meant.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
