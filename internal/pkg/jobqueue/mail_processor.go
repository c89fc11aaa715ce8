package jobqueue

import (
	"fmt"

	"github.com/franhub/franhub/app/repository"
	"github.com/franhub/franhub/internal/pkg/env"
	"github.com/franhub/franhub/internal/pkg/mail"
)

// processLeadNotificationJob mails the sales inbox about a new advertiser
// lead. The lead row is the source of truth; the job only carries its id.
func (q *Queue) processLeadNotificationJob(job *Job) error {
	payload, err := LeadNotificationJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid lead notification payload: %w", err)
	}

	salesInbox := env.GetEnv("SALES_INBOX", "")
	if salesInbox == "" {
		// No inbox configured; nothing to deliver.
		return nil
	}

	repos := repository.GetGlobalRepositories()
	if repos == nil {
		return fmt.Errorf("repositories not initialized")
	}

	contact, err := repos.Contact.GetByID(payload.ContactID)
	if err != nil {
		return fmt.Errorf("lead %d not found: %w", payload.ContactID, err)
	}

	body := fmt.Sprintf(
		"<p>New advertiser inquiry</p><ul><li>Company: %s</li><li>Contact: %s</li><li>Email: %s</li><li>Phone: %s</li><li>Package: %s</li></ul><p>%s</p>",
		contact.CompanyName, contact.ContactName, contact.Email, contact.Phone, contact.PackageKey, contact.Message,
	)
	return mail.SendMail(salesInbox, "New advertiser inquiry: "+contact.CompanyName, body)
}

// processReceiptEmailJob mails a payment receipt to the buyer.
func (q *Queue) processReceiptEmailJob(job *Job) error {
	payload, err := ReceiptEmailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid receipt payload: %w", err)
	}

	repos := repository.GetGlobalRepositories()
	if repos == nil {
		return fmt.Errorf("repositories not initialized")
	}

	user, err := repos.User.GetByID(payload.UserID)
	if err != nil {
		return fmt.Errorf("user %d not found: %w", payload.UserID, err)
	}

	body := fmt.Sprintf(
		"<p>Thanks for your purchase!</p><ul><li>Order: %s</li><li>Item: %s</li><li>Amount: %d THB</li></ul>",
		payload.SessionID, payload.Description, payload.Amount,
	)
	return mail.SendMail(user.Email, "Your FranHub receipt", body)
}
