package data

import (
	"fmt"
	"strings"
)

// Persisted keys of a browser context.
const (
	KeyToken         = "token"
	KeyUserRole      = "userRole"
	KeyStatusUpdates = "applicationStatusUpdates"
)

// SessionKeys lists the keys written together by a session change.
var SessionKeys = []string{KeyToken, KeyUserRole}

// ClientNamespace returns the key prefix of one browser context on a shared backend.
// The braces form a Redis Cluster hash tag so every key of a context maps to one slot.
func ClientNamespace(clientID string) (string, error) {
	id := strings.TrimSpace(clientID)
	if id == "" {
		return "", ErrClientIDRequired
	}
	if strings.ContainsAny(id, "{}") {
		return "", fmt.Errorf("client id %q: braces are not allowed", clientID)
	}
	return "ctx:{" + id + "}:", nil
}
