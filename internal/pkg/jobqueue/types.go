package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType selects the processor a job is routed to.
type JobType string

const (
	JobTypeLeadNotification JobType = "lead_notification"
	JobTypeReceiptEmail     JobType = "receipt_email"
)

// JobStatus tracks a job through its lifecycle. Failed jobs below their retry
// limit move to retrying and are re-enqueued with backoff.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job is the unit of work persisted in Redis. Payload stays a generic map so
// every job type serializes through the same code path.
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// IsRetryable reports whether a failed job still has retries left.
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}

// decodePayload round-trips the generic payload map through JSON into a
// typed payload struct.
func decodePayload(data map[string]interface{}, dst interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// LeadNotificationJobPayload carries the advertiser contact to notify about.
// Only the row ID is stored so a retried job always mails the current state.
type LeadNotificationJobPayload struct {
	ContactID uint `json:"contact_id"`
}

func (p LeadNotificationJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"contact_id": p.ContactID,
	}
}

func LeadNotificationJobPayloadFromMap(data map[string]interface{}) (*LeadNotificationJobPayload, error) {
	var payload LeadNotificationJobPayload
	if err := decodePayload(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ReceiptEmailJobPayload carries a completed checkout for the receipt mail.
// Amount is in the smallest currency unit, matching the payment session.
type ReceiptEmailJobPayload struct {
	UserID      uint   `json:"user_id"`
	SessionID   string `json:"session_id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	Amount      int    `json:"amount"`
}

func (p ReceiptEmailJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     p.UserID,
		"session_id":  p.SessionID,
		"kind":        p.Kind,
		"description": p.Description,
		"amount":      p.Amount,
	}
}

func ReceiptEmailJobPayloadFromMap(data map[string]interface{}) (*ReceiptEmailJobPayload, error) {
	var payload ReceiptEmailJobPayload
	if err := decodePayload(data, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
