package jobs

import (
	"log"

	DB "Backend-Encuestas/src/database"

	"github.com/hibiken/asynq"
)

// StartWorker runs the asynq server and the purge schedule. Call from a
// goroutine; it blocks for the life of the process. No-op without Redis.
func StartWorker() {
	if DB.RedisURI == "" {
		log.Println("⚠️ REDIS_URI not set, background worker disabled")
		return
	}

	redisOpt := asynq.RedisClientOpt{Addr: DB.RedisURI}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePurgeDrafts, HandlePurgeDraftsTask)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	task, err := NewPurgeDraftsTask(RetentionDays())
	if err != nil {
		log.Println("❌ Failed to build purge-drafts task:", err)
		return
	}
	if _, err := scheduler.Register("@daily", task); err != nil {
		log.Println("❌ Failed to schedule purge-drafts task:", err)
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Println("❌ Scheduler stopped:", err)
		}
	}()

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	log.Println("✅ Background worker started")
	if err := srv.Run(mux); err != nil {
		log.Println("❌ Background worker stopped:", err)
	}
}
