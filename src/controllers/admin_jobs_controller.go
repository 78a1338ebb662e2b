package controllers

import (
	"net/http"
	"strconv"
	"time"

	DB "Backend-Encuestas/src/database"
	"Backend-Encuestas/src/jobs"
	"Backend-Encuestas/src/models"
	"Backend-Encuestas/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

// TriggerPurgeDrafts enqueues a purge-drafts run outside the daily
// schedule. Admin only; requires Asynq (Redis) configured.
func TriggerPurgeDrafts(c *fiber.Ctx) error {
	if requesterRole(c) != models.RoleAdmin {
		return utils.HandleError(c, http.StatusForbidden, "Admin role required")
	}

	retentionDays := jobs.RetentionDays()
	if q := c.Query("retentionDays"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 {
			retentionDays = v
		}
	}

	task, err := jobs.NewPurgeDraftsTask(retentionDays)
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	if DB.AsynqClient == nil {
		return utils.HandleError(c, http.StatusServiceUnavailable, "asynq client not initialized")
	}

	_, err = DB.AsynqClient.Enqueue(task, asynq.TaskID("purge-drafts-"+time.Now().Format("20060102150405")))
	if err != nil {
		return utils.HandleError(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{"status": "enqueued", "retentionDays": retentionDays})
}
