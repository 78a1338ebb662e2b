package jobs

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"Backend-Encuestas/src/services/registrations"

	"github.com/hibiken/asynq"
)

const defaultRetentionDays = 30

// HandlePurgeDraftsTask deletes drafts older than the retention window.
// A failed run leaves every draft in place until the next schedule.
func HandlePurgeDraftsTask(ctx context.Context, t *asynq.Task) error {
	var payload PurgeDraftsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	days := payload.RetentionDays
	if days <= 0 {
		days = RetentionDays()
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	deleted, err := registrations.PurgeStaleDrafts(ctx, cutoff)
	if err != nil {
		log.Println("❌ Failed to purge stale drafts:", err)
		return err
	}

	log.Printf("✅ Purged %d stale drafts older than %s", deleted, cutoff.Format("2006-01-02"))
	return nil
}

// RetentionDays reads DRAFT_RETENTION_DAYS, falling back to the default.
func RetentionDays() int {
	if raw := os.Getenv("DRAFT_RETENTION_DAYS"); raw != "" {
		if days, err := strconv.Atoi(raw); err == nil && days > 0 {
			return days
		}
	}
	return defaultRetentionDays
}
