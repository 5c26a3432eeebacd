// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// WelcomeSender delivers the welcome email. *email.Client satisfies it.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

// taskEnqueuer is the producer half of asynq.Client.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	client taskEnqueuer
	server *asynq.Server
	emails WelcomeSender
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by the Redis at redisAddr.
//
// Queue weights give "critical" tasks the larger share of the 10 workers.
func NewJobService(logger *zerolog.Logger, redisAddr string, emails WelcomeSender) *JobService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		client: client,
		server: server,
		emails: emails,
		logger: logger,
	}
}

// Start registers task handlers and starts the worker server in the background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	return nil
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	task, err := NewWelcomeEmailTask(to, username)
	if err != nil {
		return fmt.Errorf("failed to build welcome email task: %w", err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue welcome email task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("enqueued welcome email task")

	return nil
}

// Stop shuts the workers down, waiting for running tasks, and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	if j.server != nil {
		j.server.Shutdown()
	}
	if err := j.client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
