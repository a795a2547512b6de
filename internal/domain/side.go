package domain

import "fmt"

// Side identifies a coalition.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// NewSide parses a side name.
func NewSide(value string) (Side, error) {
	s := Side(value)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks if the side is valid
func (s Side) Validate() error {
	switch s {
	case SideBlue, SideRed:
		return nil
	default:
		return fmt.Errorf("invalid side %q: must be blue or red", string(s))
	}
}

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

func (s Side) String() string {
	return string(s)
}
