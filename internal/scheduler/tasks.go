// Package scheduler runs recurring synchronization passes through asynq.
// The spreadsheet's edit webhook covers interactive changes; the periodic
// task catches edits made while the API was down.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSyncRun = "ingest.sync.run"

type SyncRunPayload struct {
	// Trigger records what caused the pass: "interval" or "manual".
	Trigger string `json:"trigger"`
}

func NewSyncRunTask(payload SyncRunPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSyncRun, data), nil
}

func ParseSyncRunPayload(task *asynq.Task) (SyncRunPayload, error) {
	var payload SyncRunPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SyncRunPayload{}, err
	}
	return payload, nil
}
