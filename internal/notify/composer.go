package notify

import (
	"fmt"

	"github.com/BruksfildServices01/field-service-api/internal/domain/appointment"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

// Composer renders the SMS text for each notification point.
type Composer struct {
	Business string
}

func NewComposer(business string) *Composer {
	return &Composer{Business: business}
}

func (c *Composer) slot(ap *models.Appointment) string {
	return appointment.TimeSlot(ap.TimeSlot).Label()
}

func (c *Composer) IntakeConfirmation(sr *models.ServiceRequest) Message {
	return Message{
		Kind: KindIntakeConfirmation,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, %s received your %s request (#%d). We'll contact you shortly to schedule a visit.",
			sr.Name, c.Business, sr.ServiceType, sr.ID,
		),
	}
}

func (c *Composer) LeadAssigned(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindLeadAssigned,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, technician %s has been assigned to your request. Visit: %s, %s. - %s",
			sr.Name, ap.TechnicianName, ap.ScheduledDate, c.slot(ap), c.Business,
		),
	}
}

func (c *Composer) AppointmentConfirmed(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindAppointmentConfirmed,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, your %s appointment is confirmed for %s, %s. - %s",
			sr.Name, ap.ServiceType, ap.ScheduledDate, c.slot(ap), c.Business,
		),
	}
}

func (c *Composer) TechnicianAssigned(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindTechnicianAssigned,
		To:   ap.TechnicianPhone,
		Body: fmt.Sprintf(
			"New job #%d: %s (%s) on %s, %s at %s. Customer: %s %s",
			ap.ID, ap.IssueType, ap.ServiceType, ap.ScheduledDate, c.slot(ap), sr.Address, sr.Name, sr.Phone,
		),
	}
}

func (c *Composer) RescheduledCustomer(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindRescheduled,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, your appointment has been rescheduled to %s, %s. - %s",
			sr.Name, ap.ScheduledDate, c.slot(ap), c.Business,
		),
	}
}

func (c *Composer) RescheduledTechnician(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindRescheduled,
		To:   ap.TechnicianPhone,
		Body: fmt.Sprintf(
			"Job #%d for %s is now on %s, %s at %s.",
			ap.ID, sr.Name, ap.ScheduledDate, c.slot(ap), sr.Address,
		),
	}
}

// Reassigned tells the previous technician the job moved to someone else.
func (c *Composer) Reassigned(previousPhone string, ap *models.Appointment) Message {
	return Message{
		Kind: KindReassigned,
		To:   previousPhone,
		Body: fmt.Sprintf(
			"Job #%d has been reassigned to %s. No action needed.",
			ap.ID, ap.TechnicianName,
		),
	}
}

func (c *Composer) CancelledCustomer(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindCancelled,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, your appointment on %s has been cancelled. Reply or call us to book again. - %s",
			sr.Name, ap.ScheduledDate, c.Business,
		),
	}
}

func (c *Composer) CancelledTechnician(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindCancelled,
		To:   ap.TechnicianPhone,
		Body: fmt.Sprintf(
			"Job #%d for %s on %s, %s has been cancelled.",
			ap.ID, sr.Name, ap.ScheduledDate, c.slot(ap),
		),
	}
}

func (c *Composer) Completed(sr *models.ServiceRequest, ap *models.Appointment) Message {
	return Message{
		Kind: KindCompleted,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, your %s service has been completed. Thank you for choosing %s!",
			sr.Name, ap.ServiceType, c.Business,
		),
	}
}

func (c *Composer) Reminder(sr *models.ServiceRequest, ap *models.Appointment) Message {
	body := fmt.Sprintf(
		"Reminder: your %s appointment is on %s, %s",
		ap.ServiceType, ap.ScheduledDate, c.slot(ap),
	)
	if ap.TechnicianName != "" {
		body += fmt.Sprintf(" with %s", ap.TechnicianName)
	}
	body += ". - " + c.Business

	return Message{Kind: KindReminder, To: sr.Phone, Body: body}
}

func (c *Composer) ContactRequest(sr *models.ServiceRequest, ap *models.Appointment, message string) Message {
	body := fmt.Sprintf(
		"%s (%s) asked you to get in touch about job #%d on %s.",
		sr.Name, sr.Phone, ap.ID, ap.ScheduledDate,
	)
	if message != "" {
		body += " Message: " + message
	}
	return Message{Kind: KindContactRequest, To: ap.TechnicianPhone, Body: body}
}

func (c *Composer) QuoteIssued(sr *models.ServiceRequest) Message {
	var amount float64
	if sr.QuotedAmount != nil {
		amount = *sr.QuotedAmount
	}
	var token, expiry string
	if sr.QuoteToken != nil {
		token = *sr.QuoteToken
	}
	if sr.QuoteExpiryDate != nil {
		expiry = sr.QuoteExpiryDate.Format("2006-01-02")
	}

	return Message{
		Kind: KindQuoteIssued,
		To:   sr.Phone,
		Body: fmt.Sprintf(
			"Hi %s, your quote from %s is $%.2f, valid until %s. Accept with code %s.",
			sr.Name, c.Business, amount, expiry, token,
		),
	}
}
