package booking

import "time"

// The wizard is a linear four-step machine. Forward movement goes
// through Continue, which validates the current step; backward
// movement is always allowed. Its working state lives only in a client
// slot and is discarded on submit.

type Step string

const (
	StepSelectService Step = "select_service"
	StepSelectDate    Step = "select_date"
	StepSelectTime    Step = "select_time"
	StepConfirm       Step = "confirm"
)

// DateLayout is the wire format for the selected date.
const DateLayout = "2006-01-02"

// TimeSlots is the fixed appointment grid.
var TimeSlots = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

type Wizard struct {
	Step     Step   `json:"step"`
	Service  string `json:"service"`
	Date     string `json:"date,omitempty"`
	TimeSlot string `json:"time_slot,omitempty"`
	BranchID int64  `json:"branch_id"`
}

func NewWizard(branchID int64) *Wizard {
	return &Wizard{Step: StepSelectService, BranchID: branchID}
}

func (w *Wizard) SetService(name string) { w.Service = name }

func (w *Wizard) SetDate(date string) { w.Date = date }

func (w *Wizard) SetBranch(branchID int64) { w.BranchID = branchID }

// SetTime accepts only slots from the fixed grid.
func (w *Wizard) SetTime(slot string) error {
	for _, s := range TimeSlots {
		if s == slot {
			w.TimeSlot = slot
			return nil
		}
	}
	return ErrUnknownTimeSlot
}

// Continue advances one step if the current step's guard passes;
// otherwise the wizard stays where it is and the guard's error says
// why.
func (w *Wizard) Continue(now time.Time, closedDay time.Weekday) error {
	switch w.Step {
	case StepSelectService:
		if w.Service == "" {
			return ErrServiceRequired
		}
		w.Step = StepSelectDate
	case StepSelectDate:
		if err := w.validateDate(now, closedDay); err != nil {
			return err
		}
		w.Step = StepSelectTime
	case StepSelectTime:
		if w.TimeSlot == "" {
			return ErrTimeRequired
		}
		w.Step = StepConfirm
	case StepConfirm:
		// Nothing past Confirm; submission leaves the wizard.
	}
	return nil
}

// Back moves one step toward the start.
func (w *Wizard) Back() {
	switch w.Step {
	case StepSelectDate:
		w.Step = StepSelectService
	case StepSelectTime:
		w.Step = StepSelectDate
	case StepConfirm:
		w.Step = StepSelectTime
	}
}

// Confirmation is the terminal, observable outcome of the wizard.
// Nothing durable is written; the confirmation toast is the record.
type Confirmation struct {
	Service  string `json:"service"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	BranchID int64  `json:"branch_id"`
}

// Submit accepts only a fully assembled wizard at the Confirm step and
// re-checks the date so a stale draft cannot book the past.
func (w *Wizard) Submit(now time.Time, closedDay time.Weekday) (*Confirmation, error) {
	if w.Step != StepConfirm {
		return nil, ErrNotReady
	}
	if w.Service == "" {
		return nil, ErrServiceRequired
	}
	if err := w.validateDate(now, closedDay); err != nil {
		return nil, err
	}
	if w.TimeSlot == "" {
		return nil, ErrTimeRequired
	}
	return &Confirmation{
		Service:  w.Service,
		Date:     w.Date,
		TimeSlot: w.TimeSlot,
		BranchID: w.BranchID,
	}, nil
}

func (w *Wizard) validateDate(now time.Time, closedDay time.Weekday) error {
	if w.Date == "" {
		return ErrDateRequired
	}
	day, err := time.Parse(DateLayout, w.Date)
	if err != nil {
		return ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return ErrInvalidDate
	}
	if day.Weekday() == closedDay {
		return ErrInvalidDate
	}
	return nil
}
