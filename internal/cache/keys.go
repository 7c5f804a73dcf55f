package cache

import "strings"

const (
	GlobalKeyPrefix = "trivia"
)

// GenerateCacheKey builds "trivia:<objectType>:<operation>[:<params joined by _>]".
func GenerateCacheKey(objectType, operation string, params ...string) string {
	key := strings.Join([]string{GlobalKeyPrefix, objectType, operation}, ":")
	if len(params) > 0 {
		key += ":" + strings.Join(params, "_")
	}
	return key
}
