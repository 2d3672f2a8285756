package booking

import (
	"errors"
	"fmt"
	"time"
)

// Step is a page of the booking wizard
type Step string

const (
	StepService  Step = "service"
	StepRooms    Step = "rooms"
	StepDateTime Step = "datetime"
	StepConfirm  Step = "confirm"
)

var steps = []Step{StepService, StepRooms, StepDateTime, StepConfirm}

// DateLayout is the format of Wizard.Date
const DateLayout = "2006-01-02"

// Service types a cleaning booking can be made for
var ServiceTypes = []string{
	"standard_cleaning",
	"deep_cleaning",
	"end_of_tenancy",
	"airbnb_turnover",
}

// TimeSlots are the arrival windows offered on the date/time step
var TimeSlots = []string{
	"08:00-10:00",
	"10:00-12:00",
	"12:00-14:00",
	"14:00-16:00",
	"16:00-18:00",
}

var (
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrAtFirstStep    = errors.New("already at the first step")
	ErrAtLastStep     = errors.New("already at the last step")
	ErrUnknownStep    = errors.New("unknown wizard step")
)

// Wizard is the state of one booking in progress. Nothing is persisted until the
// confirm step is submitted.
type Wizard struct {
	Step        Step   `json:"step"`
	ServiceType string `json:"service_type"`
	Bedrooms    int    `json:"bedrooms"`
	Bathrooms   int    `json:"bathrooms"`
	Date        string `json:"date"`
	TimeSlot    string `json:"time_slot"`
}

// NewWizard starts a wizard on the service step with one bedroom and one bathroom.
func NewWizard() *Wizard {
	return &Wizard{Step: StepService, Bedrooms: 1, Bathrooms: 1}
}

// ValidationError lists the fields that failed validation
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking is invalid: %d field(s) failed validation", len(e.Fields))
}

func (w *Wizard) index() int {
	for i, s := range steps {
		if s == w.Step {
			return i
		}
	}
	return -1
}

// StepComplete reports whether the given step's fields are filled in.
func (w *Wizard) StepComplete(step Step) bool {
	switch step {
	case StepService:
		return IsServiceType(w.ServiceType)
	case StepRooms:
		return RoomsInRange(w.Bedrooms, w.Bathrooms)
	case StepDateTime:
		return w.Date != "" && w.TimeSlot != ""
	case StepConfirm:
		return w.StepComplete(StepService) && w.StepComplete(StepRooms) && w.StepComplete(StepDateTime)
	}
	return false
}

// CanAdvance reports whether Next would succeed.
func (w *Wizard) CanAdvance() bool {
	i := w.index()
	return i >= 0 && i < len(steps)-1 && w.StepComplete(w.Step)
}

// Next moves forward one step if the current step is complete.
func (w *Wizard) Next() error {
	i := w.index()
	switch {
	case i < 0:
		return ErrUnknownStep
	case i == len(steps)-1:
		return ErrAtLastStep
	case !w.StepComplete(w.Step):
		return ErrStepIncomplete
	}
	w.Step = steps[i+1]
	return nil
}

// Back moves to the previous step. Entered values are kept.
func (w *Wizard) Back() error {
	i := w.index()
	switch {
	case i < 0:
		return ErrUnknownStep
	case i == 0:
		return ErrAtFirstStep
	}
	w.Step = steps[i-1]
	return nil
}

// Hours is the estimated job length for the current room counts.
func (w *Wizard) Hours() int {
	return Hours(w.Bedrooms, w.Bathrooms)
}

// Price is the total for the current room counts.
func (w *Wizard) Price() float64 {
	return Price(w.Bedrooms, w.Bathrooms)
}

// Validate checks every step plus the allowed values, as of now.
func (w *Wizard) Validate(now time.Time) error {
	fields := make(map[string]string)

	if w.ServiceType == "" {
		fields["service_type"] = "service type is required"
	} else if !IsServiceType(w.ServiceType) {
		fields["service_type"] = "unknown service type"
	}
	if msg := roomCountError(w.Bedrooms); msg != "" {
		fields["bedrooms"] = msg
	}
	if msg := roomCountError(w.Bathrooms); msg != "" {
		fields["bathrooms"] = msg
	}

	if w.Date == "" {
		fields["date"] = "date is required"
	} else if d, err := time.Parse(DateLayout, w.Date); err != nil {
		fields["date"] = "date must be YYYY-MM-DD"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			fields["date"] = "date must not be in the past"
		}
	}

	if w.TimeSlot == "" {
		fields["time_slot"] = "time slot is required"
	} else if !IsTimeSlot(w.TimeSlot) {
		fields["time_slot"] = "unknown time slot"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func roomCountError(n int) string {
	switch {
	case n < 1:
		return "must be at least 1"
	case n > MaxRooms:
		return fmt.Sprintf("must be at most %d, call us for larger homes", MaxRooms)
	}
	return ""
}

// IsServiceType reports whether s is a bookable service type.
func IsServiceType(s string) bool {
	for _, t := range ServiceTypes {
		if t == s {
			return true
		}
	}
	return false
}

// IsTimeSlot reports whether s is an offered time slot.
func IsTimeSlot(s string) bool {
	for _, t := range TimeSlots {
		if t == s {
			return true
		}
	}
	return false
}
