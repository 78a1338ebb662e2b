package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypePurgeDrafts = "registration:purge_drafts"

type PurgeDraftsPayload struct {
	RetentionDays int `json:"retention_days"`
}

func NewPurgeDraftsTask(retentionDays int) (*asynq.Task, error) {
	payload, err := json.Marshal(PurgeDraftsPayload{RetentionDays: retentionDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePurgeDrafts, payload), nil
}
