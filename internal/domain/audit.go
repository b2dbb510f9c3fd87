package domain

import (
	"encoding/json"
	"time"
)

// AuditLog represents an audit trail entry for compliance and debugging
type AuditLog struct {
	ID           string
	Actor        string // Who performed the action
	Action       string // What action (transaction.create, account.update, etc.)
	ResourceType string // Type of resource (account, transaction, recurrence)
	ResourceID   string // ID of the resource
	Payload      JSON   // State after the action
	Status       string // success, failure
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable actions
type AuditAction string

const (
	// Account actions
	AuditActionAccountCreate     AuditAction = "account.create"
	AuditActionAccountCardConfig AuditAction = "account.card_config"

	// Transaction actions
	AuditActionTransactionCreate AuditAction = "transaction.create"
	AuditActionTransactionCancel AuditAction = "transaction.cancel"
	AuditActionTransactionAdjust AuditAction = "transaction.adjust"
	AuditActionInstallmentCreate AuditAction = "transaction.installments"

	// Transfer actions
	AuditActionTransferCreate AuditAction = "transfer.create"
	AuditActionInvoicePay     AuditAction = "invoice.pay"

	// Recurrence actions
	AuditActionRecurrenceGenerate AuditAction = "recurrence.generate"
)

// AuditStatus represents the status of an audited action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}

// AuditFilter defines filters for querying audit logs
type AuditFilter struct {
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}
