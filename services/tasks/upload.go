package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeUploadProcess = "upload:process"

// UploadPayload identifies the upload a worker should process.
type UploadPayload struct {
	UploadID string `json:"uploadId"`
}

// NewUploadTask builds the processing task for an accepted upload. Failures
// are recorded on the upload itself, so asynq does not retry.
func NewUploadTask(uploadID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(UploadPayload{UploadID: uploadID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeUploadProcess, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Timeout(5 * time.Minute)}

	return task, opts, nil
}

func ParseUploadPayload(task *asynq.Task) (UploadPayload, error) {
	var p UploadPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid upload payload: %w", err)
	}
	if p.UploadID == "" {
		return p, fmt.Errorf("invalid upload payload: missing uploadId")
	}
	return p, nil
}
