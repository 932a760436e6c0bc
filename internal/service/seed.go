package service

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/limbo/starboard/internal/repository"
	"github.com/limbo/starboard/pkg/entity"
	"github.com/limbo/starboard/pkg/logging"
)

var DefaultTasks = []entity.Task{
	{Name: "完成每日作业", Description: "认真完成老师布置的所有作业", Category: entity.CategoryLearning, Stars: 3},
	{Name: "阅读课外书", Description: "每天阅读30分钟课外书", Category: entity.CategoryLearning, Stars: 2},
	{Name: "复习今日课程", Description: "复习今天学习的知识点", Category: entity.CategoryLearning, Stars: 2},
	{Name: "整理房间", Description: "整理床铺、书桌和玩具", Category: entity.CategoryLife, Stars: 2},
	{Name: "刷牙洗脸", Description: "早晚按时刷牙洗脸", Category: entity.CategoryLife, Stars: 1},
	{Name: "收拾书包", Description: "检查明天需要的课本和文具", Category: entity.CategoryLife, Stars: 1},
	{Name: "按时起床", Description: "每天按时起床，不赖床", Category: entity.CategoryDiscipline, Stars: 2},
	{Name: "遵守课堂纪律", Description: "上课认真听讲，不交头接耳", Category: entity.CategoryDiscipline, Stars: 2},
	{Name: "按时就寝", Description: "晚上按时睡觉，保证充足睡眠", Category: entity.CategoryDiscipline, Stars: 2},
}

var DefaultRewards = []entity.Reward{
	{Name: "看一集喜欢的动画片", Description: "可以观看一集自己喜欢的动画片", Cost: 5},
	{Name: "玩手机游戏", Description: "可以玩一会儿手机游戏", Cost: 8},
	{Name: "去公园玩", Description: "可以去公园玩耍和运动", Cost: 10},
	{Name: "骑自行车", Description: "可以骑自行车出去玩", Cost: 8},
	{Name: "购买新玩具", Description: "可以购买一个心仪的新玩具", Cost: 30},
	{Name: "去游乐园", Description: "可以去游乐园玩一天", Cost: 50},
}

type SeedOptions struct {
	// Seed tables that already hold records
	Force bool
}

type SeedReport struct {
	TasksCreated   int
	RewardsCreated int
	Failed         int
	Skipped        []entity.Table
}

type Seeder struct {
	records repository.RecordsRepositoryI
}

func NewSeeder(records repository.RecordsRepositoryI) *Seeder {
	if records == nil {
		log.Fatal("provided nil records repo")
	}
	return &Seeder{records: records}
}

// Seed fills empty task and reward tables with the default set. A failed
// record is logged and counted; the run goes on.
func (s *Seeder) Seed(ctx context.Context, opts SeedOptions) (*SeedReport, error) {
	report := &SeedReport{}

	taskFields := make([]map[string]any, 0, len(DefaultTasks))
	for _, t := range DefaultTasks {
		taskFields = append(taskFields, t.Fields())
	}
	created, err := s.seedTable(ctx, entity.TableTasks, taskFields, opts, report)
	if err != nil {
		return report, err
	}
	report.TasksCreated = created

	rewardFields := make([]map[string]any, 0, len(DefaultRewards))
	for _, r := range DefaultRewards {
		rewardFields = append(rewardFields, r.Fields())
	}
	created, err = s.seedTable(ctx, entity.TableRewards, rewardFields, opts, report)
	if err != nil {
		return report, err
	}
	report.RewardsCreated = created
	return report, nil
}

func (s *Seeder) seedTable(ctx context.Context, table entity.Table, rows []map[string]any, opts SeedOptions, report *SeedReport) (int, error) {
	logger := logging.FromContext(ctx).With(slog.String("table", string(table)))
	if !opts.Force {
		existing, err := s.records.List(ctx, table)
		if err != nil {
			return 0, fmt.Errorf("checking %s table: %w", table, err)
		}
		if len(existing) > 0 {
			logger.Info("table not empty, skipping", slog.Int("records", len(existing)))
			report.Skipped = append(report.Skipped, table)
			return 0, nil
		}
	}
	created := 0
	for _, fields := range rows {
		if _, err := s.records.Create(ctx, table, fields); err != nil {
			logger.Error("seed record not created", slog.Any("fields", fields), slog.String("error", err.Error()))
			report.Failed++
			continue
		}
		created++
	}
	logger.Info("table seeded", slog.Int("created", created))
	return created, nil
}
