package servicerequest

import (
	"time"

	"github.com/BruksfildServices01/field-service-api/internal/models"
)

const DefaultQuoteValidDays = 7

// IssueQuote records a priced quote. Any earlier quote is replaced and must
// be accepted again.
func IssueQuote(sr *models.ServiceRequest, amount float64, validDays int, token string, now time.Time) error {
	if Status(sr.Status).IsClosed() {
		return ErrClosed
	}
	if validDays <= 0 {
		validDays = DefaultQuoteValidDays
	}

	expiry := now.AddDate(0, 0, validDays)
	issued := now
	sr.QuotedAmount = &amount
	sr.Cost = &amount
	sr.QuoteDate = &issued
	sr.QuoteExpiryDate = &expiry
	sr.QuoteToken = &token
	sr.QuoteAcceptedDate = nil
	sr.Status = string(StatusQuoted)
	return nil
}

func AcceptQuote(sr *models.ServiceRequest, now time.Time) error {
	if sr.QuoteToken == nil || sr.QuotedAmount == nil {
		return ErrQuoteNotFound
	}
	if sr.QuoteAcceptedDate != nil {
		return ErrQuoteAlreadyAccepted
	}
	if sr.QuoteExpiryDate != nil && now.After(*sr.QuoteExpiryDate) {
		return ErrQuoteExpired
	}

	accepted := now
	sr.QuoteAcceptedDate = &accepted
	return nil
}

// CanClaim enforces that technicians only self-assign quoted-and-accepted work.
func CanClaim(sr *models.ServiceRequest) error {
	if Status(sr.Status).IsClosed() {
		return ErrClosed
	}
	if sr.TechnicianID != nil {
		return ErrAlreadyAssigned
	}
	if sr.QuotedAmount == nil || sr.QuoteAcceptedDate == nil {
		return ErrQuoteNotAccepted
	}
	return nil
}
