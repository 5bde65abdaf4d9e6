package scheduler

import (
	"context"
	"fmt"

	"booking-portal/config"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

const (
	TypeSendReceiptEmail = "send_receipt_email"

	MonitoringRootPath = "/monitoring"
)

type Scheduler struct {
	Log *otelzap.Logger
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr(), Password: cfg.Password, DB: cfg.DB}
}

// MonitoringHandler serves the asynqmon UI under MonitoringRootPath.
// The caller mounts it behind admin auth.
func (s *Scheduler) MonitoringHandler(cfg *config.RedisConfig) *asynqmon.HTTPHandler {
	return asynqmon.New(asynqmon.Options{
		RootPath:     MonitoringRootPath,
		RedisConnOpt: redisOpt(cfg),
	})
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) error {
	if len(taskTypes) != len(handlerFunc) {
		return fmt.Errorf("scheduler: %d task types for %d handlers", len(taskTypes), len(handlerFunc))
	}

	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 10,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				s.Log.Ctx(ctx).Error(fmt.Sprintf("error process task %s: %v", task.Type(), err))
			}),
		},
	)

	mux := asynq.NewServeMux()
	for i, taskType := range taskTypes {
		mux = s.registerHandlers(mux, taskType, handlerFunc[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Ctx(context.Background()).Error(fmt.Sprintf("error start handler scheduler: %v", err))
		return err
	}
	return nil
}

func (s *Scheduler) registerHandlers(mux *asynq.ServeMux, typeTask string, handlerFunc func(ctx context.Context, t *asynq.Task) error) *asynq.ServeMux {
	mux.HandleFunc(typeTask, handlerFunc)
	return mux
}
