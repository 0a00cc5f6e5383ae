package booking

type SetServiceRequest struct {
	Service string `json:"service" validate:"required"`
}

type SetDateRequest struct {
	Date string `json:"date" validate:"required"`
}

type SetTimeRequest struct {
	TimeSlot string `json:"time_slot" validate:"required"`
}

type SetBranchRequest struct {
	BranchID int64 `json:"branch_id" validate:"required"`
}

type WizardResponse struct {
	Step      Step     `json:"step"`
	Service   string   `json:"service"`
	Date      string   `json:"date,omitempty"`
	TimeSlot  string   `json:"time_slot,omitempty"`
	BranchID  int64    `json:"branch_id"`
	TimeSlots []string `json:"time_slots"`
}

func toWizardResponse(w *Wizard) WizardResponse {
	return WizardResponse{
		Step:      w.Step,
		Service:   w.Service,
		Date:      w.Date,
		TimeSlot:  w.TimeSlot,
		BranchID:  w.BranchID,
		TimeSlots: TimeSlots,
	}
}
