package domain

import "fmt"

// MentalState is a self-reported mood before or after a gaming session.
// The zero value is not a valid state.
type MentalState uint8

const (
	StateStressed MentalState = iota + 1
	StateNeutral
	StateRelaxed
	StateExcited
	StateAnxious
)

// MentalStates lists every valid state in declaration order.
var MentalStates = []MentalState{
	StateStressed,
	StateNeutral,
	StateRelaxed,
	StateExcited,
	StateAnxious,
}

var stateNames = map[MentalState]string{
	StateStressed: "Stressed",
	StateNeutral:  "Neutral",
	StateRelaxed:  "Relaxed",
	StateExcited:  "Excited",
	StateAnxious:  "Anxious",
}

// ParseMentalState converts a display name into a MentalState
func ParseMentalState(s string) (MentalState, error) {
	for state, name := range stateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMentalState, s)
}

// Valid reports whether s is one of the five known states
func (s MentalState) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

func (s MentalState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MentalState(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler
func (s MentalState) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMentalState, uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *MentalState) UnmarshalText(text []byte) error {
	state, err := ParseMentalState(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}
