package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/golang/mock/gomock"
	"github.com/limbo/starboard/internal/api"
	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/internal/service"
	"github.com/limbo/starboard/internal/service/mocks"
	"github.com/limbo/starboard/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

var (
	taskRecords = []entity.Record{
		{ID: "t1", Fields: map[string]any{entity.FieldTaskName: "homework", entity.FieldTaskCompleted: true}},
		{ID: "t2", Fields: map[string]any{entity.FieldTaskName: "reading"}},
	}
	rewardRecords = []entity.Record{
		{ID: "r1", Fields: map[string]any{entity.FieldRewardName: "park", entity.FieldRewardCost: 10}},
	}
	progress = entity.Progress{CompletedTasks: 1, TotalTasks: 2, CurrentLevel: 1, TotalStars: 3, StreakDays: 1}
)

func newServer(t *testing.T) (http.Handler, *mocks.MockTasksServiceI, *mocks.MockRewardsServiceI) {
	ctrl := gomock.NewController(t)
	tasks := mocks.NewMockTasksServiceI(ctrl)
	rewards := mocks.NewMockRewardsServiceI(ctrl)
	serv := api.New(&api.ServicesList{
		TasksService:   tasks,
		RewardsService: rewards,
	})
	return serv.Handler(), tasks, rewards
}

func do(t *testing.T, h http.Handler, method, target string, body []byte, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	h.ServeHTTP(rr, req)
	var env envelope
	require.NoError(t, sonic.ConfigDefault.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func TestGetTasks(t *testing.T) {
	testCases := []struct {
		Desc         string
		Status       int
		MockPrepFunc func(tasks *mocks.MockTasksServiceI)
	}{
		{
			Desc:   "success",
			Status: http.StatusOK,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().ListTasks(gomock.Any()).Return(taskRecords, nil)
			},
		},
		{
			Desc:   "store failure",
			Status: http.StatusInternalServerError,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().ListTasks(gomock.Any()).Return(nil, &errorvalues.UpstreamError{Op: "list", Message: "boom", Retryable: true})
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			h, tasks, _ := newServer(t)
			tc.MockPrepFunc(tasks)
			rr, env := do(t, h, http.MethodGet, "/api/tasks", nil, nil)
			assert.Equal(t, tc.Status, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(api.RequestIDHeader))
			if tc.Status == http.StatusOK {
				assert.Equal(t, 0, env.Code)
				items, ok := env.Data.([]any)
				require.True(t, ok)
				assert.Len(t, items, 2)
				return
			}
			assert.Equal(t, 1, env.Code)
			assert.Contains(t, env.Message, "boom")
		})
	}
}

func TestGetAllData(t *testing.T) {
	h, tasks, _ := newServer(t)
	tasks.EXPECT().GetAllData(gomock.Any()).Return(&service.AllData{
		Tasks:    taskRecords,
		Progress: progress,
		Rewards:  rewardRecords,
	}, nil)

	rr, env := do(t, h, http.MethodGet, "/api/all-data", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "tasks")
	assert.Contains(t, data, "rewards")
	prog, ok := data["progress"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, prog["total_stars"])
	assert.EqualValues(t, 1, prog["streak_days"])
}

func TestGetProgress(t *testing.T) {
	h, tasks, _ := newServer(t)
	tasks.EXPECT().GetProgress(gomock.Any()).Return(progress, nil)

	rr, env := do(t, h, http.MethodGet, "/api/user/progress", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, data["current_level"])
	assert.EqualValues(t, 2, data["total_tasks"])
}

func TestUpdateTask(t *testing.T) {
	testCases := []struct {
		Desc         string
		Body         string
		Status       int
		MockPrepFunc func(tasks *mocks.MockTasksServiceI)
	}{
		{
			Desc:   "completed",
			Body:   `{"fields":{"completed":true}}`,
			Status: http.StatusOK,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().UpdateTask(gomock.Any(), "t1", map[string]any{"completed": true}).
					Return(&taskRecords[0], nil)
			},
		},
		{
			Desc:         "invalid body",
			Body:         `{"fields":`,
			Status:       http.StatusBadRequest,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {},
		},
		{
			Desc:   "validation error",
			Body:   `{"fields":{}}`,
			Status: http.StatusBadRequest,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().UpdateTask(gomock.Any(), "t1", gomock.Any()).
					Return(nil, errorvalues.ErrValidation)
			},
		},
		{
			Desc:   "not found is a server error",
			Body:   `{"fields":{"completed":false}}`,
			Status: http.StatusInternalServerError,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().UpdateTask(gomock.Any(), "t1", gomock.Any()).
					Return(nil, errorvalues.ErrTaskNotFound)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			h, tasks, _ := newServer(t)
			tc.MockPrepFunc(tasks)
			rr, _ := do(t, h, http.MethodPut, "/api/tasks/t1", []byte(tc.Body), nil)
			assert.Equal(t, tc.Status, rr.Code)
		})
	}
}

func TestCheckIn(t *testing.T) {
	testCases := []struct {
		Desc         string
		Body         string
		Headers      map[string]string
		Status       int
		MockPrepFunc func(tasks *mocks.MockTasksServiceI)
	}{
		{
			Desc:    "success with user header",
			Body:    `{"task_ids":["t1","t2"]}`,
			Headers: map[string]string{api.UserIDHeader: "kid"},
			Status:  http.StatusOK,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().CheckIn(gomock.Any(), &service.CheckInRequest{TaskIDs: []string{"t1", "t2"}, UserID: "kid"}).
					Return(&service.CheckInResult{
						RewardMessage:    "well done",
						Progress:         progress,
						CompletedTaskIDs: []string{"t1", "t2"},
					}, nil)
			},
		},
		{
			Desc:   "default user",
			Body:   `{"task_ids":["t1"]}`,
			Status: http.StatusOK,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().CheckIn(gomock.Any(), &service.CheckInRequest{TaskIDs: []string{"t1"}, UserID: entity.DefaultUserID}).
					Return(&service.CheckInResult{CompletedTaskIDs: []string{"t1"}}, nil)
			},
		},
		{
			Desc:   "empty ids",
			Body:   `{"task_ids":[]}`,
			Status: http.StatusBadRequest,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().CheckIn(gomock.Any(), gomock.Any()).Return(nil, errorvalues.ErrEmptyTaskIDs)
			},
		},
		{
			Desc:         "invalid body",
			Body:         `not json`,
			Status:       http.StatusBadRequest,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {},
		},
		{
			Desc:   "store failure",
			Body:   `{"task_ids":["t1"]}`,
			Status: http.StatusInternalServerError,
			MockPrepFunc: func(tasks *mocks.MockTasksServiceI) {
				tasks.EXPECT().CheckIn(gomock.Any(), gomock.Any()).Return(nil, errors.New("mocked error"))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			h, tasks, _ := newServer(t)
			tc.MockPrepFunc(tasks)
			rr, env := do(t, h, http.MethodPost, "/api/user/checkin", []byte(tc.Body), tc.Headers)
			assert.Equal(t, tc.Status, rr.Code)
			if tc.Status != http.StatusOK {
				assert.Equal(t, 1, env.Code)
				assert.NotEmpty(t, env.Message)
			}
		})
	}
}

func TestCheckInResponseShape(t *testing.T) {
	h, tasks, _ := newServer(t)
	tasks.EXPECT().CheckIn(gomock.Any(), gomock.Any()).Return(&service.CheckInResult{
		RewardMessage:    "well done",
		Progress:         progress,
		CompletedTaskIDs: []string{"t1"},
	}, nil)

	_, env := do(t, h, http.MethodPost, "/api/user/checkin", []byte(`{"task_ids":["t1"]}`), nil)
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "well done", data["reward_message"])
	assert.Equal(t, []any{"t1"}, data["completed_task_ids"])
	assert.Contains(t, data, "progress")
}

func TestRedeem(t *testing.T) {
	testCases := []struct {
		Desc         string
		Body         string
		Status       int
		Message      []string
		MockPrepFunc func(rewards *mocks.MockRewardsServiceI)
	}{
		{
			Desc:   "success",
			Body:   `{"reward_id":"r1","current_stars":10}`,
			Status: http.StatusOK,
			MockPrepFunc: func(rewards *mocks.MockRewardsServiceI) {
				rewards.EXPECT().Redeem(gomock.Any(), &service.RedeemRequest{RewardID: "r1", UserID: entity.DefaultUserID, CurrentStars: 10}).
					Return(&service.RedeemResult{Reward: &rewardRecords[0], StarsSpent: 8, RemainingStars: 2}, nil)
			},
		},
		{
			Desc:    "insufficient balance",
			Body:    `{"reward_id":"r1","current_stars":5}`,
			Status:  http.StatusInternalServerError,
			Message: []string{"redeem failed", "8", "5"},
			MockPrepFunc: func(rewards *mocks.MockRewardsServiceI) {
				rewards.EXPECT().Redeem(gomock.Any(), gomock.Any()).
					Return(nil, &errorvalues.InsufficientBalanceError{Required: 8, Balance: 5})
			},
		},
		{
			Desc:    "missing reward id",
			Body:    `{"current_stars":5}`,
			Status:  http.StatusBadRequest,
			Message: []string{"reward_id"},
			MockPrepFunc: func(rewards *mocks.MockRewardsServiceI) {
				rewards.EXPECT().Redeem(gomock.Any(), gomock.Any()).Return(nil, errorvalues.ErrEmptyRewardID)
			},
		},
		{
			Desc:   "already redeemed",
			Body:   `{"reward_id":"r1","current_stars":50}`,
			Status: http.StatusBadRequest,
			MockPrepFunc: func(rewards *mocks.MockRewardsServiceI) {
				rewards.EXPECT().Redeem(gomock.Any(), gomock.Any()).Return(nil, errorvalues.ErrRewardRedeemed)
			},
		},
		{
			Desc:   "unknown reward",
			Body:   `{"reward_id":"nope","current_stars":50}`,
			Status: http.StatusInternalServerError,
			MockPrepFunc: func(rewards *mocks.MockRewardsServiceI) {
				rewards.EXPECT().Redeem(gomock.Any(), gomock.Any()).Return(nil, errorvalues.ErrRewardNotFound)
			},
		},
		{
			Desc:         "invalid body",
			Body:         `{"reward_id":1`,
			Status:       http.StatusBadRequest,
			MockPrepFunc: func(rewards *mocks.MockRewardsServiceI) {},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			h, _, rewards := newServer(t)
			tc.MockPrepFunc(rewards)
			rr, env := do(t, h, http.MethodPost, "/api/rewards/redeem", []byte(tc.Body), nil)
			assert.Equal(t, tc.Status, rr.Code)
			for _, part := range tc.Message {
				assert.Contains(t, env.Message, part)
			}
			if tc.Status == http.StatusOK {
				data, ok := env.Data.(map[string]any)
				require.True(t, ok)
				assert.EqualValues(t, 2, data["remaining_stars"])
				assert.EqualValues(t, 8, data["stars_spent"])
			}
		})
	}
}

func TestGetRewards(t *testing.T) {
	h, _, rewards := newServer(t)
	rewards.EXPECT().ListRewards(gomock.Any()).Return(rewardRecords, nil)

	rr, env := do(t, h, http.MethodGet, "/api/rewards", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	items, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestHealthzAndCORS(t *testing.T) {
	h, _, _ := newServer(t)
	rr, env := do(t, h, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, env.Data)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	cors := httptest.NewRecorder()
	h.ServeHTTP(cors, req)
	assert.Equal(t, "*", cors.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestTimeoutReachesService(t *testing.T) {
	ctrl := gomock.NewController(t)
	tasks := mocks.NewMockTasksServiceI(ctrl)
	tasks.EXPECT().ListTasks(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]entity.Record, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return []entity.Record{}, nil
	})
	h := api.New(&api.ServicesList{
		TasksService:   tasks,
		RewardsService: mocks.NewMockRewardsServiceI(ctrl),
	}).Handler()

	rr, env := do(t, h, http.MethodGet, "/api/tasks", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json"))
	assert.Equal(t, []any{}, env.Data)
}
