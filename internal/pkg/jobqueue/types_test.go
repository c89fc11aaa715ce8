package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	job := &Job{
		ID:         "test-job",
		Type:       JobTypeLeadNotification,
		Status:     JobStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
		MaxRetries: DefaultMaxRetries,
	}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsFailed("smtp down")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "smtp down", job.ErrorMsg)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.ErrorMsg)
	require.NotNil(t, job.CompletedAt)
	assert.False(t, job.IsRetryable())
}

func TestJobRetryExhaustion(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: 2}

	job.MarkAsFailed("first")
	assert.True(t, job.IsRetryable())
	job.MarkAsFailed("second")
	assert.False(t, job.IsRetryable())
}

func TestLeadNotificationPayloadRoundTrip(t *testing.T) {
	payload := LeadNotificationJobPayload{ContactID: 42}

	restored, err := LeadNotificationJobPayloadFromMap(payload.ToMap())
	require.NoError(t, err)
	assert.Equal(t, uint(42), restored.ContactID)
}

func TestReceiptEmailPayloadRoundTrip(t *testing.T) {
	payload := ReceiptEmailJobPayload{
		UserID:      7,
		SessionID:   "sess-1",
		Kind:        "boost",
		Description: "Listing boost (7 days)",
		Amount:      199,
	}

	restored, err := ReceiptEmailJobPayloadFromMap(payload.ToMap())
	require.NoError(t, err)
	assert.Equal(t, payload, *restored)
}
