package node

import "github.com/google/uuid"

// NewRunID generates a fresh identifier for one daemon process lifetime.
// novachaind attaches it to its start, running and stopping log lines so
// operators can tell one process's logs from the next after a restart.
func NewRunID() string {
	return uuid.NewString()
}
