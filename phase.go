package gridlight

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Phase is the signal state of a single approach
type Phase int

const (
	// Stop holds cars at the approach
	Stop Phase = iota
	// Go lets cars depart the approach
	Go
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case Stop:
		return "stop"
	case Go:
		return "go"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Complement returns the opposite phase
func (p Phase) Complement() Phase {
	if p == Go {
		return Stop
	}
	return Go
}

// ParsePhase accepts "stop"/"red" and "go"/"green", case-insensitive
func ParsePhase(s string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stop", "red":
		return Stop, nil
	case "go", "green":
		return Go, nil
	}
	return Stop, fmt.Errorf("%w: %q", ErrInvalidPhase, s)
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	if p != Stop && p != Go {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPhase, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (p Phase) MarshalYAML() (interface{}, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Phase) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrInvalidPhase, value.Line)
	}
	return p.UnmarshalText([]byte(value.Value))
}
