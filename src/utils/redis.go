package utils

import (
	"context"
	"fmt"
	"time"

	DB "Backend-Encuestas/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

const surveyCacheTTL = 10 * time.Minute

// ensureClient returns the shared Redis client managed by the database
// package. Callers tolerate a nil client (cache disabled).
func ensureClient() *redis.Client {
	return DB.RedisClient
}

func surveyKey(surveyID string) string {
	return fmt.Sprintf("survey:%s", surveyID)
}

// CacheSurvey stores the serialized full survey view.
// No-op when Redis is not available.
func CacheSurvey(surveyID string, payload []byte) error {
	client := ensureClient()
	if client == nil {
		return nil
	}
	if err := client.Set(Ctx, surveyKey(surveyID), payload, surveyCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache survey: %v", err)
	}
	return nil
}

// GetCachedSurvey returns the cached survey view, if present.
func GetCachedSurvey(surveyID string) ([]byte, bool, error) {
	client := ensureClient()
	if client == nil {
		return nil, false, nil
	}
	payload, err := client.Get(Ctx, surveyKey(surveyID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read survey cache: %v", err)
	}
	return payload, true, nil
}

// InvalidateSurvey drops the cached view after any survey mutation.
func InvalidateSurvey(surveyID string) error {
	client := ensureClient()
	if client == nil {
		return nil
	}
	if err := client.Del(Ctx, surveyKey(surveyID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate survey cache: %v", err)
	}
	return nil
}
