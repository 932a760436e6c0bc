package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/pkg/entity"
)

type markerFile struct {
	LastResetDate string    `json:"last_reset_date"`
	ResetCount    int       `json:"reset_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FileResetMarkerRepository keeps the marker in a small JSON file for
// deployments without Postgres.
type FileResetMarkerRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileResetMarkerRepo(path string) *FileResetMarkerRepository {
	return &FileResetMarkerRepository{path: path}
}

func (fr *FileResetMarkerRepository) Get(ctx context.Context) (*entity.ResetMarker, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	data, err := os.ReadFile(fr.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errorvalues.ErrMarkerNotFound
		}
		return nil, errors.New("reading reset marker file error: " + err.Error())
	}
	var mf markerFile
	if err := sonic.Unmarshal(data, &mf); err != nil {
		return nil, errors.New("decoding reset marker file error: " + err.Error())
	}
	date, err := time.Parse(time.DateOnly, mf.LastResetDate)
	if err != nil {
		return nil, errors.New("invalid date in reset marker file: " + err.Error())
	}
	return &entity.ResetMarker{
		LastResetDate: date,
		ResetCount:    mf.ResetCount,
		UpdatedAt:     mf.UpdatedAt,
	}, nil
}

// Save writes through a temp file and rename so a crash never leaves a
// truncated marker behind.
func (fr *FileResetMarkerRepository) Save(ctx context.Context, marker *entity.ResetMarker) error {
	if marker == nil {
		return errors.New("reset marker is nil")
	}
	data, err := sonic.Marshal(markerFile{
		LastResetDate: marker.LastResetDate.Format(time.DateOnly),
		ResetCount:    marker.ResetCount,
		UpdatedAt:     marker.UpdatedAt,
	})
	if err != nil {
		return errors.New("encoding reset marker error: " + err.Error())
	}
	fr.mu.Lock()
	defer fr.mu.Unlock()
	dir := filepath.Dir(fr.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New("creating reset marker dir error: " + err.Error())
	}
	tmp, err := os.CreateTemp(dir, ".reset-marker-*")
	if err != nil {
		return errors.New("creating temp marker file error: " + err.Error())
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New("writing reset marker error: " + err.Error())
	}
	if err := tmp.Close(); err != nil {
		return errors.New("closing temp marker file error: " + err.Error())
	}
	if err := os.Rename(tmp.Name(), fr.path); err != nil {
		return errors.New("replacing reset marker file error: " + err.Error())
	}
	return nil
}
