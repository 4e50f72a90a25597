package entities

// AssistantContext is the situation the assistant answers within. All
// fields beyond Message are optional; zero values mean "not provided".
type AssistantContext struct {
	Message         string   `json:"message"`
	Country         string   `json:"country,omitempty"`
	RemainingBudget *float64 `json:"remaining_budget,omitempty"`
	Day             int      `json:"day,omitempty"`
	TimeSlot        string   `json:"time_slot,omitempty"`
	Preferences     []string `json:"preferences,omitempty"`

	// Trip is attached by the service when the caller references one.
	Trip *Trip `json:"trip,omitempty"`
}

// AssistantReply is the assistant's answer plus the soft rules that were
// in force when it was produced.
type AssistantReply struct {
	Reply string   `json:"reply"`
	Rules []string `json:"rules,omitempty"`
}
