package wizard

import (
	"encoding/json"
	"fmt"
)

// Step is a position in the booking wizard. Steps only move forward one at
// a time; Back moves one step back and keeps later data.
type Step int

const (
	StepTripSelect Step = iota
	StepSeatSelect
	StepPaymentInfo
	StepSubmitted
)

var stepNames = [...]string{"TRIP_SELECT", "SEAT_SELECT", "PAYMENT_INFO", "SUBMITTED"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Step) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, n := range stepNames {
		if n == name {
			*s = Step(i)
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", name)
}
