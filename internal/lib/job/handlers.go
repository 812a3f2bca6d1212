package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) handleBookmarkAuditTask(ctx context.Context, t *asynq.Task) error {
	var p BookmarkAuditPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal bookmark audit payload: %w", err)
	}

	j.logger.Info().
		Str("type", "audit").
		Str("action", p.Action).
		Int64("bookmark_id", p.BookmarkID).
		Str("request_id", p.RequestID).
		Time("occurred_at", p.OccurredAt).
		Msg("bookmark audit")

	return nil
}
