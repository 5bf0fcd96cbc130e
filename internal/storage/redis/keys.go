package redis

import "fmt"

// Key prefix for all enforcement data
const keyPrefix = "forceteam"

// journalKey returns the Redis key for the report list of a namespace
func journalKey(namespace string) string {
	return fmt.Sprintf("%s:%s:reports", keyPrefix, namespace)
}
