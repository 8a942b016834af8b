package occupancy

import (
	"github.com/Soulinho/pandawok-project/internal/httperr"
)

// ===============================
// Table Status
// ===============================

type Status string

const (
	StatusFree     Status = "free"
	StatusReserved Status = "reserved"
	StatusOccupied Status = "occupied"
)

// ===============================
// Reservation Origin
// ===============================

type Origin string

const (
	OriginRestaurant Origin = "Restaurant"
	OriginWeb        Origin = "Web"
	OriginWalkIn     Origin = "WalkIn"
)

// ===============================
// Table geometry
// ===============================

type Shape string

const (
	ShapeRound       Shape = "round"
	ShapeSquare      Shape = "square"
	ShapeRectangular Shape = "rectangular"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Shape) Valid() bool {
	switch s {
	case ShapeRound, ShapeSquare, ShapeRectangular:
		return true
	}
	return false
}

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// ===============================
// Transitions
// ===============================

// CanPlace covers both reservation and walk-in creation.
func CanPlace(current Status) error {
	if current != StatusFree {
		return ErrInvalidState
	}
	return nil
}

func CanSeatReserved(current Status) error {
	if current != StatusReserved {
		return ErrInvalidState
	}
	return nil
}

// CanRelease covers finalize and delete.
func CanRelease(current Status) error {
	if current == StatusFree {
		return ErrInvalidState
	}
	return nil
}

func CanMove(source, target Status) error {
	if source == StatusFree {
		return ErrSourceNotBound
	}
	if target != StatusFree {
		return ErrTargetNotFree
	}
	return nil
}

// ===============================
// Errors
// ===============================

var (
	ErrNotFound                = httperr.ErrBusiness(httperr.CodeNotFound)
	ErrInvalidState            = httperr.ErrBusiness(httperr.CodeInvalidState)
	ErrInvalidSalon            = httperr.ErrBusiness(httperr.CodeInvalidSalon)
	ErrTargetNotFree           = httperr.ErrBusiness(httperr.CodeTargetNotFree)
	ErrSourceNotBound          = httperr.ErrBusiness(httperr.CodeSourceNotBound)
	ErrImmutableFieldViolation = httperr.ErrBusiness(httperr.CodeImmutableFieldViolation)
	ErrBusy                    = httperr.ErrBusiness(httperr.CodeBusy)
	ErrTableBlocked            = httperr.ErrBusiness(httperr.CodeTableBlocked)
)
