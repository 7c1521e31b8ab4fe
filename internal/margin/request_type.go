package margin

import (
	"fmt"
	"strings"
)

// RequestType is the kind of calculation the service performs.
// The zero value means the type was never set.
type RequestType string

const (
	RequestTypeStandard RequestType = "STANDARD" // standard margin run
	RequestTypeFull     RequestType = "FULL"     // full run with detailed breakdown
)

// DefaultRequestType is used whenever a caller does not choose a type.
const DefaultRequestType = RequestTypeStandard

func (t RequestType) String() string {
	return string(t)
}

// IsValid reports whether t is one of the known request types.
func (t RequestType) IsValid() bool {
	switch t {
	case RequestTypeStandard, RequestTypeFull:
		return true
	default:
		return false
	}
}

// ParseRequestType parses a request type name, ignoring case.
func ParseRequestType(s string) (RequestType, error) {
	t := RequestType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown margin request type %q", s)
	}
	return t, nil
}

func (t RequestType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("unknown margin request type %q", string(t))
	}
	return []byte(t), nil
}

func (t *RequestType) UnmarshalText(text []byte) error {
	parsed, err := ParseRequestType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
