package redis

import (
	"fmt"
	"strings"
)

// Key prefix for all auction data
const keyPrefix = "fantasta"

// backupSuffix marks undo backups, which use their own TTL
const backupSuffix = ":backup"

// recordKey returns the Redis key for a stored record
func recordKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}

// isBackupKey reports whether key names an undo backup
func isBackupKey(key string) bool {
	return strings.HasSuffix(key, backupSuffix)
}
