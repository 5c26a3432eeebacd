package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the job type name stored in Redis.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of the welcome email task.
type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

// NewWelcomeEmailTask constructs an Asynq task for sending a welcome email.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): send into the "default" queue
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
func NewWelcomeEmailTask(to, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:       to,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
