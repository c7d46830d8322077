package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ProfilePrefix       = "profile:"
	CareerSummaryPrefix = "career_summary:"

	ProfileTTL = 10 * time.Minute
)

// CacheManager groups the helpers used by the services.
type CacheManager struct {
	client        *redis.Client
	Profile       *CacheHelper
	CareerSummary *CacheHelper
}

func NewCacheManager(client *redis.Client) *CacheManager {
	return &CacheManager{
		client:        client,
		Profile:       NewCacheHelper(client, ProfilePrefix),
		CareerSummary: NewCacheHelper(client, CareerSummaryPrefix),
	}
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// SummaryKey ties a summary to the profile version it was generated from, so
// editing the profile naturally misses the old entry.
func SummaryKey(userID uint, profileUpdatedAt time.Time) string {
	return fmt.Sprintf("user:%d:%d", userID, profileUpdatedAt.UnixNano())
}

func (cm *CacheManager) HealthCheck(ctx context.Context) error {
	if cm.client == nil {
		return ErrCacheNotAvailable
	}
	if err := cm.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cache health check failed: %w", err)
	}
	return nil
}

// InvalidateUser drops the cached profile and every cached summary of a user.
func (cm *CacheManager) InvalidateUser(ctx context.Context, userID uint) {
	SafeDelete(ctx, cm.Profile, ProfileKey(userID))
	SafeInvalidatePattern(ctx, cm.CareerSummary, fmt.Sprintf("user:%d:*", userID))
}
