package availability

import (
	"fmt"

	"realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

// Reason identifies why an admission was rejected. The HTTP layer maps
// these to status codes and the client renders them as specific messages.
type Reason string

const (
	ReasonInvalidRange        Reason = "INVALID_RANGE"
	ReasonMissingDate         Reason = "MISSING_DATE"
	ReasonDateConflict        Reason = "DATE_CONFLICT"
	ReasonPropertyUnavailable Reason = "PROPERTY_UNAVAILABLE"
	ReasonDuplicateRequest    Reason = "DUPLICATE_REQUEST"
	ReasonMalformedInput      Reason = "MALFORMED_INPUT"
)

// RejectedError carries a reason code through the service layer. Expected
// business rejections travel as values, not panics.
type RejectedError struct {
	Reason Reason
}

func (e RejectedError) Error() string {
	return fmt.Sprintf("availability: booking rejected (%s)", e.Reason)
}

// Request is the candidate submission, shaped by the listing
// configuration rather than by which optional fields happen to be set.
type Request interface {
	isRequest()
}

// StayRequest is a flexible-duration rent candidate.
type StayRequest struct {
	CheckIn  dates.Day
	CheckOut dates.Day
}

func (StayRequest) isRequest() {}

// AppointmentRequest is a single viewing date for a sale or fixed-duration
// rent listing.
type AppointmentRequest struct {
	Date dates.Day
}

func (AppointmentRequest) isRequest() {}

type Decision struct {
	Accepted bool
	Reason   Reason

	// Stay or Appointment carries the admitted dates on acceptance.
	Stay        *dates.Range
	Appointment *dates.Day
}

func rejected(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Decide applies the admission rules in order: listing availability guard,
// one-outstanding-request-per-guest guard, then the shape-specific date
// rules against the schedule.
func Decide(p *property.Property, sched Schedule, hasOutstanding bool, req Request, today dates.Day) Decision {
	if p.Status != property.StatusPublished {
		return rejected(ReasonPropertyUnavailable)
	}
	if hasOutstanding {
		return rejected(ReasonDuplicateRequest)
	}

	switch r := req.(type) {
	case StayRequest:
		if !p.FlexibleStay() {
			// Fixed-shape listings never accept a range.
			return rejected(ReasonMissingDate)
		}
		stay, err := dates.NewStay(r.CheckIn, r.CheckOut)
		if err != nil {
			return rejected(ReasonInvalidRange)
		}
		if !sched.RangeFree(stay, today) {
			return rejected(ReasonDateConflict)
		}
		return Decision{Accepted: true, Stay: &stay}
	case AppointmentRequest:
		if r.Date.IsZero() {
			return rejected(ReasonMissingDate)
		}
		if sched.Disabled(r.Date, today) {
			return rejected(ReasonDateConflict)
		}
		d := r.Date
		return Decision{Accepted: true, Appointment: &d}
	default:
		return rejected(ReasonMalformedInput)
	}
}
