package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskBookmarkAudit = "bookmark:audit"
)

// Audit actions recorded for bookmark writes.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// BookmarkAuditPayload records one successful write.
type BookmarkAuditPayload struct {
	Action     string    `json:"action"`
	BookmarkID int64     `json:"bookmark_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookmarkAuditTask(payload BookmarkAuditPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBookmarkAudit,
		data,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
