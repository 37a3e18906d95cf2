package notify

type Kind string

const (
	KindIntakeConfirmation   Kind = "intake_confirmation"
	KindLeadAssigned         Kind = "lead_assigned"
	KindAppointmentConfirmed Kind = "appointment_confirmed"
	KindTechnicianAssigned   Kind = "technician_assigned"
	KindRescheduled          Kind = "rescheduled"
	KindReassigned           Kind = "reassigned"
	KindCancelled            Kind = "cancelled"
	KindCompleted            Kind = "completed"
	KindReminder             Kind = "reminder"
	KindContactRequest       Kind = "contact_request"
	KindQuoteIssued          Kind = "quote_issued"
)

// Message is one outbound SMS requested by a domain operation.
type Message struct {
	Kind Kind   `json:"kind"`
	To   string `json:"to"`
	Body string `json:"body"`
}

// Dispatcher delivers messages without blocking or failing the caller.
type Dispatcher interface {
	Dispatch(msgs ...Message)
}
