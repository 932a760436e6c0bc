package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/starboard/internal/error_values"
	"github.com/limbo/starboard/internal/service"
	"github.com/limbo/starboard/pkg/httputil"
	"github.com/limbo/starboard/pkg/logging"
)

type UpdateTaskRequest struct {
	Fields map[string]any `json:"fields"`
}

type CheckInRequest struct {
	TaskIDs []string `json:"task_ids"`
}

type RedeemRequest struct {
	RewardID     string `json:"reward_id"`
	CurrentStars int    `json:"current_stars"`
}

// statusFor maps error kinds to the HTTP status the client expects: only
// validation failures are the caller's fault.
func statusFor(err error) int {
	if errors.Is(err, errorvalues.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeServiceError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	status := statusFor(err)
	attrs := []any{slog.String("error", err.Error()), slog.Int("status", status)}
	if errorvalues.IsRetryable(err) {
		attrs = append(attrs, slog.Bool("retryable", true))
	}
	if status == http.StatusBadRequest {
		logger.Warn(op+" error: bad request", attrs...)
	} else {
		logger.Error(op+" error: service error", attrs...)
	}
	httputil.WriteErrorResponse(w, status, op+" failed", err)
}

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(errorvalues.ErrInvalidBody, err)
	}
	return nil
}

func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	tasks, err := s.tasksService.ListTasks(ctx)
	if err != nil {
		writeServiceError(w, logger, "list tasks", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, tasks)
	logger.Info("tasks listed", slog.Int("count", len(tasks)))
}

func (s *Server) GetAllData(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	data, err := s.tasksService.GetAllData(ctx)
	if err != nil {
		writeServiceError(w, logger, "get all data", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, data)
	logger.Info("all data served")
}

func (s *Server) UpdateTask(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	id := chi.URLParam(r, "id")
	var req UpdateTaskRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Error("update task error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	rec, err := s.tasksService.UpdateTask(ctx, id, req.Fields)
	if err != nil {
		writeServiceError(w, logger, "update task", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, rec)
	logger.Info("task updated", slog.String("task_id", id))
}

func (s *Server) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	progress, err := s.tasksService.GetProgress(ctx)
	if err != nil {
		writeServiceError(w, logger, "get progress", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, progress)
}

func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	var req CheckInRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Error("check-in error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	res, err := s.tasksService.CheckIn(ctx, &service.CheckInRequest{
		TaskIDs: req.TaskIDs,
		UserID:  GetUIDFromContext(r),
	})
	if err != nil {
		writeServiceError(w, logger, "check-in", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("successful check-in", slog.Int("completed", len(res.CompletedTaskIDs)))
}

func (s *Server) GetRewards(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	rewards, err := s.rewardsService.ListRewards(ctx)
	if err != nil {
		writeServiceError(w, logger, "list rewards", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, rewards)
}

func (s *Server) Redeem(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	var req RedeemRequest
	if err := decodeBody(r, &req); err != nil {
		logger.Error("redeem error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()
	res, err := s.rewardsService.Redeem(ctx, &service.RedeemRequest{
		RewardID:     req.RewardID,
		UserID:       GetUIDFromContext(r),
		CurrentStars: req.CurrentStars,
	})
	if err != nil {
		writeServiceError(w, logger, "redeem", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, res)
	logger.Info("successful redeem", slog.String("reward_id", req.RewardID), slog.Int("remaining", res.RemainingStars))
}
