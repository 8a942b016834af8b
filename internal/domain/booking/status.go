package booking

import "github.com/Soulinho/pandawok-project/internal/httperr"

// ===============================
// Request Status
// ===============================

type Status string

const (
	StatusSubmitted       Status = "submitted"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusPlaced          Status = "placed"
)

// InitialStatus routes parties above threshold to manual approval.
func InitialStatus(partySize, threshold int) Status {
	if RequiresApproval(partySize, threshold) {
		return StatusPendingApproval
	}
	return StatusSubmitted
}

func RequiresApproval(partySize, threshold int) bool {
	return partySize > threshold
}

// ===============================
// Validations
// ===============================

func CanApprove(current Status) error {
	if current != StatusPendingApproval {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanReject(current Status) error {
	if current != StatusPendingApproval {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanPlace reports whether staff may seat the request on a table.
func CanPlace(current Status) error {
	if current != StatusSubmitted && current != StatusApproved {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
