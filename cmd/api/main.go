package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/starboard/internal/api"
	"github.com/limbo/starboard/internal/repository"
	"github.com/limbo/starboard/internal/service"
	"github.com/limbo/starboard/pkg/bitable"
	"github.com/limbo/starboard/pkg/cleanup"
	"github.com/limbo/starboard/pkg/config"
	"github.com/limbo/starboard/pkg/logging"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	logging.Setup(cfg.GetStringOr("LOG_FORMAT", "text"), cfg.GetStringOr("LOG_LEVEL", "info"))
	if err := cfg.Require("FEISHU_APP_ID", "FEISHU_APP_SECRET", "BASE_ID", "TASK_TABLE_ID", "REWARD_TABLE_ID", "PROGRESS_TABLE_ID"); err != nil {
		log.Fatal(err.Error())
	}
	loc, err := cfg.GetLocation("APP_TIMEZONE", "Asia/Shanghai")
	if err != nil {
		log.Fatal("loading app timezone error: " + err.Error())
	}

	client := bitable.New(bitable.Config{
		BaseURL:   cfg.GetStringOr("FEISHU_BASE_URL", bitable.DefaultBaseURL),
		AppID:     cfg.GetString("FEISHU_APP_ID"),
		AppSecret: cfg.GetString("FEISHU_APP_SECRET"),
		AppToken:  cfg.GetString("BASE_ID"),
		PageSize:  cfg.GetInt("BITABLE_PAGE_SIZE", 0),
		Timeout:   cfg.GetDuration("STORE_TIMEOUT", 10*time.Second),
	})
	records := repository.NewRecordsRepo(client, repository.TableIDs{
		Tasks:    cfg.GetString("TASK_TABLE_ID"),
		Rewards:  cfg.GetString("REWARD_TABLE_ID"),
		Progress: cfg.GetString("PROGRESS_TABLE_ID"),
	})
	markers := newMarkerRepo(cfg)

	clock := service.SystemClock{}
	resetter := service.NewDailyResetter(records, markers, clock, loc)
	serv := api.New(&api.ServicesList{
		TasksService:   service.NewTasksService(records, resetter, clock, loc),
		RewardsService: service.NewRewardsService(records, clock, loc),
		RequestTimeout: cfg.GetDuration("REQUEST_TIMEOUT", 15*time.Second),
		AccessLog:      accessLog(cfg),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.GetStringOr("API_ADDRESS", ":8080")
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("address", addr), slog.String("timezone", loc.String()))
		serverErr <- serv.Run(addr)
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := serv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", slog.String("error", err.Error()))
		}
	}
	cleanup.CleanUp()
}

func newMarkerRepo(cfg *config.Config) repository.ResetMarkerRepositoryI {
	switch backend := cfg.GetStringOr("RESET_MARKER_BACKEND", "file"); backend {
	case "postgres":
		dbCfg := repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
		}
		if err := repository.Migrate(&dbCfg, cfg.GetStringOr("MIGRATIONS_DIR", "./migrations")); err != nil {
			log.Fatal(err.Error())
		}
		return repository.NewResetMarkerRepo(&dbCfg)
	case "file":
		return repository.NewFileResetMarkerRepo(cfg.GetStringOr("RESET_MARKER_FILE", "./data/reset_marker.json"))
	default:
		log.Fatal("unknown RESET_MARKER_BACKEND: " + backend)
		return nil
	}
}

func accessLog(cfg *config.Config) io.Writer {
	if cfg.GetStringOr("ACCESS_LOG", "off") != "stdout" {
		return nil
	}
	return os.Stdout
}
