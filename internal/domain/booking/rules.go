package booking

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Soulinho/pandawok-project/internal/httperr"
	"github.com/Soulinho/pandawok-project/internal/timezone"
)

const (
	MinPartySize = 1
	MaxPartySize = 149
)

// Rules are the intake limits published to the booking form.
type Rules struct {
	LargeGroupThreshold int      `json:"large_group_threshold"`
	MinLeadDays         int      `json:"min_lead_days"`
	HorizonMonths       int      `json:"horizon_months"`
	Slots               []string `json:"slots"`
}

// Request is a public reservation request.
type Request struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email,max=100"`
	PartySize int    `json:"party_size" validate:"min=1,max=149"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Comments  string `json:"comments" validate:"max=500"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DateWindow returns the first and last bookable dates relative to now.
func (r Rules) DateWindow(now time.Time) (time.Time, time.Time) {
	today := timezone.StartOfDay(now)
	return today.AddDate(0, 0, r.MinLeadDays), today.AddDate(0, r.HorizonMonths, 0)
}

func (r Rules) HasSlot(t string) bool {
	for _, s := range r.Slots {
		if s == t {
			return true
		}
	}
	return false
}

// Validate checks req against the rules and returns every rejected field.
func (r Rules) Validate(req Request, now time.Time) error {
	var bad []string
	seen := map[string]bool{}
	add := func(field string) {
		if !seen[field] {
			seen[field] = true
			bad = append(bad, field)
		}
	}

	if err := validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve {
			add(fe.Field())
		}
	}

	if req.Date != "" && !seen["date"] {
		d, err := timezone.ParseDate(req.Date, now.Location())
		if err != nil {
			add("date")
		} else {
			first, last := r.DateWindow(now)
			if d.Before(first) || d.After(last) {
				add("date")
			}
		}
	}

	if req.Time != "" && !r.HasSlot(req.Time) {
		add("time")
	}

	if len(bad) > 0 {
		return httperr.ErrValidation(bad...)
	}
	return nil
}
