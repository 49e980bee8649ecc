package cache

import "strings"

const (
	GlobalKeyPrefix = "exambyte"

	ServiceStats = "stats"
	ServiceLock  = "lock"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// UserStatsKey is where a user's statistics snapshot is memoized.
func UserStatsKey(userID string) string {
	return GenerateCacheKey(ServiceStats, "user", userID)
}

// SessionLockKey names the mutex guarding one quiz session.
func SessionLockKey(sessionID string) string {
	return GenerateCacheKey(ServiceLock, "session", sessionID)
}
