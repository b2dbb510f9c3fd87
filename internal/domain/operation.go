package domain

import "time"

// OperationLogTTL is how long an operation id blocks replays.
const OperationLogTTL = 24 * time.Hour

// OperationLog records a successfully executed command keyed by the
// caller-supplied operation id. A live row is the sole idempotency signal;
// absence means the command has not (successfully) run.
type OperationLog struct {
	ID          string
	OperationID string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// NewOperationLog creates an operation log entry expiring after the TTL.
func NewOperationLog(id, operationID string, now time.Time) *OperationLog {
	return &OperationLog{
		ID:          id,
		OperationID: operationID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(OperationLogTTL),
	}
}

// IsExpired reports whether the entry no longer blocks replays.
func (o *OperationLog) IsExpired(now time.Time) bool {
	return !o.ExpiresAt.After(now)
}
