package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"time"

	"github.com/limbo/starboard/internal/repository"
	"github.com/limbo/starboard/internal/service"
	"github.com/limbo/starboard/pkg/bitable"
	"github.com/limbo/starboard/pkg/config"
	"github.com/limbo/starboard/pkg/logging"
)

func main() {
	force := flag.Bool("force", false, "seed tables that already hold records")
	flag.Parse()

	cfg := config.New()
	logging.Setup(cfg.GetStringOr("LOG_FORMAT", "text"), cfg.GetStringOr("LOG_LEVEL", "info"))
	if err := cfg.Require("FEISHU_APP_ID", "FEISHU_APP_SECRET", "BASE_ID", "TASK_TABLE_ID", "REWARD_TABLE_ID"); err != nil {
		log.Fatal(err.Error())
	}
	client := bitable.New(bitable.Config{
		BaseURL:   cfg.GetStringOr("FEISHU_BASE_URL", bitable.DefaultBaseURL),
		AppID:     cfg.GetString("FEISHU_APP_ID"),
		AppSecret: cfg.GetString("FEISHU_APP_SECRET"),
		AppToken:  cfg.GetString("BASE_ID"),
		Timeout:   cfg.GetDuration("STORE_TIMEOUT", 10*time.Second),
	})
	records := repository.NewRecordsRepo(client, repository.TableIDs{
		Tasks:   cfg.GetString("TASK_TABLE_ID"),
		Rewards: cfg.GetString("REWARD_TABLE_ID"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	report, err := service.NewSeeder(records).Seed(ctx, service.SeedOptions{Force: *force})
	if err != nil {
		log.Fatal("seeding error: " + err.Error())
	}
	slog.Info("seeding finished",
		slog.Int("tasks_created", report.TasksCreated),
		slog.Int("rewards_created", report.RewardsCreated),
		slog.Int("failed", report.Failed),
		slog.Any("skipped", report.Skipped))
	if report.Failed > 0 {
		log.Fatalf("%d records were not created", report.Failed)
	}
}
