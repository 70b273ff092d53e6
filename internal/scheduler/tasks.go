package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskExpireLeases = "leases.expire"

// ExpireLeasesPayload pins the sweep to a date. A zero AsOf means the time
// the worker picks the task up.
type ExpireLeasesPayload struct {
	AsOf time.Time `json:"asOf,omitempty"`
}

func NewExpireLeasesTask(payload ExpireLeasesPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskExpireLeases, data), nil
}

func ParseExpireLeasesPayload(task *asynq.Task) (ExpireLeasesPayload, error) {
	var payload ExpireLeasesPayload
	if len(task.Payload()) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ExpireLeasesPayload{}, err
	}
	return payload, nil
}
